package report

import (
	"strings"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/markdown"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/metrics"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const (
	tailoredMargin = 40.0
	contactLines   = 10
)

// TailoredResume renders a markdown resume in a classic serif layout. It
// returns nil for blank input or when the PDF could not be built.
func TailoredResume(md string) (out []byte) {
	if strings.TrimSpace(md) == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("tailored.render_panic", map[string]any{"panic": r})
			out = nil
		}
		metrics.ObserveRender("tailored", out != nil)
	}()

	d := newDoc(tailoredMargin)
	d.pdf.AddPage()

	var table [][]string
	flush := func() {
		if len(table) > 0 {
			d.gridTable(table)
			d.space(10)
		}
		table = nil
	}

	for i, raw := range strings.Split(md, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "|") && strings.Contains(line[1:], "|") {
			if !isSeparatorRow(line) {
				table = append(table, tableCells(line))
			}
			continue
		}
		flush()

		switch {
		case strings.HasPrefix(line, "# "):
			d.paragraph("resumeName", strings.ToUpper(markdown.Clean(line[2:])), "C")
			d.space(6)
		case strings.HasPrefix(line, "## "):
			d.space(12)
			d.paragraph("resumeSection", strings.ToUpper(markdown.Clean(line[3:])), "C")
			d.space(8)
		case strings.HasPrefix(line, "### "):
			d.space(6)
			d.paragraph("resumeSubheading", markdown.Clean(line[4:]), "L")
			d.space(2)
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			d.writeRich("resumeBody", bulletMark+strings.TrimSpace(line[2:]), 20)
			d.space(2)
		case i < contactLines && strings.ContainsAny(line, "|@+"):
			d.paragraph("resumeContact", markdown.Clean(line), "C")
			d.space(10)
		default:
			d.writeRich("resumeBody", line, 0)
			d.space(4)
		}
	}
	flush()

	data, err := d.bytes()
	if err != nil {
		telemetry.Error("tailored.render_failed", map[string]any{"err": err})
		return nil
	}
	return data
}

// gridTable draws rows with equal column widths and a light grey header.
func (d *doc) gridTable(rows [][]string) {
	n := len(rows[0])
	if n == 0 {
		return
	}
	w := d.width() / float64(n)
	cols := make([]column, n)
	for i := range cols {
		cols[i] = column{width: w, header: markdown.Clean(rows[0][i]), fill: &lightGrey}
	}
	body := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		cells := make([]string, n)
		for i := range cells {
			if i < len(r) {
				cells[i] = markdown.Clean(r[i])
			}
		}
		body = append(body, cells)
	}
	d.table(cols, "resumeTableHead", "resumeTable", "L", body)
}

func tableCells(line string) []string {
	parts := strings.Split(strings.Trim(line, "|"), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// isSeparatorRow matches "|---|:---:|" style rows.
func isSeparatorRow(line string) bool {
	rest := strings.TrimSpace(strings.ReplaceAll(line, "|", ""))
	if rest == "" {
		return false
	}
	return strings.Trim(rest, "-: ") == ""
}
