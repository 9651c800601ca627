package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	inch        = 72.0
	cellPadding = 4.0
	bulletMark  = "• "
)

// doc wraps an fpdf document with the report's layout helpers. All text goes
// through tr so UTF-8 input is mapped onto the core fonts' code page.
type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// column is one table column. A nil fill leaves the header cell unfilled.
type column struct {
	width  float64
	header string
	fill   *rgb
}

func newDoc(margin float64) *doc {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	return &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *doc) use(name string) TextStyle {
	s, ok := StyleMap[name]
	if !ok {
		s = StyleMap["normal"]
	}
	d.pdf.SetFont(s.Family, s.fontStyle(), s.Size)
	d.pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	return s
}

func (d *doc) left() float64 {
	l, _, _, _ := d.pdf.GetMargins()
	return l
}

func (d *doc) width() float64 {
	w, _ := d.pdf.GetPageSize()
	l, _, r, _ := d.pdf.GetMargins()
	return w - l - r
}

func (d *doc) setFill(c rgb) { d.pdf.SetFillColor(c.R, c.G, c.B) }

func (d *doc) setDraw(c rgb) { d.pdf.SetDrawColor(c.R, c.G, c.B) }

func (d *doc) space(h float64) { d.pdf.Ln(h) }

// ensureSpace starts a new page when h does not fit above the bottom margin.
func (d *doc) ensureSpace(h float64) {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+h > pageH-bottom {
		d.pdf.AddPage()
	}
}

func (d *doc) paragraph(style, text, align string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s := d.use(style)
	d.pdf.SetX(d.left())
	d.pdf.MultiCell(d.width(), s.Leading, d.tr(text), "", align, false)
}

func (d *doc) bullet(style, text string, indent float64) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s := d.use(style)
	d.pdf.SetX(d.left() + indent)
	d.pdf.MultiCell(d.width()-indent, s.Leading, d.tr(bulletMark+text), "", "L", false)
}

// heading draws the white-on-dark-blue section banner.
func (d *doc) heading(text string) {
	s := d.use("heading")
	d.ensureSpace(s.Leading * 3)
	d.setFill(darkBlue)
	d.setDraw(grey)
	d.pdf.SetLineWidth(0.5)
	d.pdf.SetX(d.left())
	d.pdf.CellFormat(d.width(), s.Leading, d.tr(" "+text), "1", 1, "L", true, 0, "")
	d.space(6)
}

func (d *doc) subheading(text string) {
	s := d.use("subheading")
	d.ensureSpace(s.Leading * 3)
	d.pdf.SetX(d.left())
	d.pdf.CellFormat(d.width(), s.Leading, d.tr(text), "B", 1, "L", false, 0, "")
	d.space(4)
}

// labelRows draws borderless "Label: value" rows, label bold dark blue.
func (d *doc) labelRows(labelWidth float64, rows [][2]string) {
	for _, r := range rows {
		s := d.use("label")
		d.pdf.SetX(d.left())
		d.pdf.CellFormat(labelWidth, s.Leading, d.tr(r[0]), "", 0, "L", false, 0, "")
		s = d.use("value")
		d.pdf.MultiCell(d.width()-labelWidth, s.Leading, d.tr(r[1]), "", "L", false)
		d.space(2)
	}
}

// table draws a gridded table. The header row is skipped when no column has a header.
func (d *doc) table(cols []column, headerStyle, bodyStyle, headerAlign string, rows [][]string) {
	d.setDraw(black)
	d.pdf.SetLineWidth(1)

	headers := make([]string, len(cols))
	hasHeader := false
	for i, c := range cols {
		headers[i] = c.header
		if c.header != "" {
			hasHeader = true
		}
	}
	if hasHeader {
		d.row(cols, headers, headerStyle, headerAlign, true)
	}
	for _, r := range rows {
		d.row(cols, r, bodyStyle, "L", false)
	}
}

func (d *doc) row(cols []column, cells []string, style, align string, header bool) {
	s := d.use(style)
	lines := make([][]string, len(cols))
	maxLines := 1
	for i, c := range cols {
		text := ""
		if i < len(cells) {
			text = d.tr(cells[i])
		}
		lines[i] = d.split(text, c.width-2*cellPadding)
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	h := float64(maxLines)*s.Leading + 2*cellPadding
	d.ensureSpace(h)

	x, y := d.left(), d.pdf.GetY()
	for i, c := range cols {
		rectStyle := "D"
		if header && c.fill != nil {
			d.setFill(*c.fill)
			rectStyle = "FD"
		}
		d.pdf.Rect(x, y, c.width, h, rectStyle)
		for j, line := range lines[i] {
			d.pdf.SetXY(x+cellPadding, y+cellPadding+float64(j)*s.Leading)
			d.pdf.CellFormat(c.width-2*cellPadding, s.Leading, line, "", 0, align, false, 0, "")
		}
		x += c.width
	}
	d.pdf.SetXY(d.left(), y+h)
}

func (d *doc) split(text string, w float64) []string {
	if text == "" {
		return []string{""}
	}
	var out []string
	for _, b := range d.pdf.SplitLines([]byte(text), w) {
		out = append(out, string(b))
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// writeRich writes one wrapped line where **x** runs are bold.
func (d *doc) writeRich(style, text string, indent float64) {
	s := d.use(style)
	l := d.left()
	d.pdf.SetLeftMargin(l + indent)
	d.pdf.SetX(l + indent)
	for i, seg := range strings.Split(text, "**") {
		if seg == "" {
			continue
		}
		if i%2 == 1 {
			d.pdf.SetFontStyle("B")
		} else {
			d.pdf.SetFontStyle(s.fontStyle())
		}
		d.pdf.Write(s.Leading, d.tr(seg))
	}
	d.pdf.SetLeftMargin(l)
	d.pdf.Ln(s.Leading)
}

// footer prints the generation date on the left and the page number on the right of every page.
func (d *doc) footer(date string) {
	d.pdf.SetFooterFunc(func() {
		s := d.use("footer")
		d.pdf.SetY(-0.25*inch - s.Leading)
		d.pdf.CellFormat(d.width(), s.Leading, d.tr("Generated on: "+date), "", 0, "L", false, 0, "")
		d.pdf.SetX(d.left())
		d.pdf.CellFormat(d.width(), s.Leading, fmt.Sprintf("Page %d", d.pdf.PageNo()), "", 0, "R", false, 0, "")
	})
}

func (d *doc) bytes() ([]byte, error) {
	if err := d.pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
