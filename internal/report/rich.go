package report

import (
	"strings"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses/recommendations"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/markdown"
)

const (
	noStrengths    = "No specific strengths identified in the analysis."
	noImprovements = "No specific areas for improvement identified in the analysis."
	fallbackIntro  = "Based on your resume and target role, consider the following types of courses and certifications:"
	coursesTitle   = "Recommended Courses & Certifications"
)

// renderRich builds the full report with gauges and tables.
func renderRich(result *analyses.Result, meta Meta) ([]byte, error) {
	d := newDoc(0.5 * inch)
	date := meta.GeneratedAt.Format(dateLayout)
	d.footer(date)
	d.pdf.AddPage()

	d.header(result, meta, date)

	d.heading("Resume Evaluation")
	d.gaugeRow(result.Score, result.ATSScore)

	sections := analyses.SplitSections(result.FullResponse)

	d.heading("Executive Summary")
	d.paragraph("normal", sections.Paragraph(analyses.SectionOverall), "L")
	d.space(14)

	d.subheading("Key Strengths and Areas for Improvement")
	d.strengthsTable(result.Strengths, result.Weaknesses)
	d.space(18)

	d.heading("Detailed Analysis")
	for _, sec := range sections {
		if !isDetailed(sec.Title) {
			continue
		}
		d.subheading(sec.Title)
		switch {
		case strings.EqualFold(sec.Title, analyses.SectionSkills):
			d.skillsTable(sec.Body)
		case strings.EqualFold(sec.Title, analyses.SectionATS):
			d.atsSection(sec.Body)
		default:
			d.sectionBody(sec.Body)
		}
		d.space(14)
	}

	d.subheading(coursesTitle)
	if len(result.Suggestions) > 0 {
		rows := make([][]string, 0, len(result.Suggestions))
		for _, c := range result.Suggestions {
			rows = append(rows, []string{bulletMark + markdown.Clean(c)})
		}
		d.table([]column{{width: d.width(), header: coursesTitle, fill: &lightBlue}}, "tableHeader", "normal", "C", rows)
	} else {
		d.paragraph("normal", fallbackIntro, "L")
		d.space(6)
		for _, c := range recommendations.FallbackCourses(meta.JobRole) {
			d.bullet("normal", c, 12)
		}
	}

	return d.bytes()
}

// header draws the title block, the candidate table and the model row shared by both layouts.
func (d *doc) header(result *analyses.Result, meta Meta, date string) {
	d.paragraph("title", "Resume Analysis Report", "C")
	d.paragraph("subtitle", "Generated on "+date, "C")
	d.space(18)

	d.labelRows(1.5*inch, [][2]string{
		{"Candidate:", candidateName(meta.CandidateName)},
		{"Target Role:", targetRole(meta.JobRole)},
	})
	d.space(8)
	d.labelRows(1.9*inch, [][2]string{{"Analysis performed by:", result.ModelUsed}})
	d.space(18)
}

func (d *doc) strengthsTable(strengths, weaknesses []string) {
	half := d.width() / 2
	cols := []column{
		{width: half, header: "Key Strengths", fill: &lightGreen},
		{width: half, header: "Areas for Improvement", fill: &salmon},
	}
	if len(strengths) == 0 && len(weaknesses) == 0 {
		d.table(cols, "tableHeader", "normal", "C", [][]string{{noStrengths, noImprovements}})
		return
	}
	n := max(len(strengths), len(weaknesses))
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{bulletAt(strengths, i), bulletAt(weaknesses, i)}
	}
	d.table(cols, "tableHeader", "normal", "C", rows)
}

func (d *doc) skillsTable(body string) {
	current := recommendations.CurrentSkills(body)
	missing := recommendations.MissingSkills(body)
	if len(current) == 0 && len(missing) == 0 {
		d.sectionBody(body)
		return
	}
	half := d.width() / 2
	cols := []column{
		{width: half, header: "Current Skills", fill: &lightGreen},
		{width: half, header: "Missing Skills", fill: &lightGreen},
	}
	n := max(len(current), len(missing))
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{itemAt(current, i), itemAt(missing, i)}
	}
	d.table(cols, "tableHeader", "normal", "C", rows)
}

// atsSection prints the "ATS Score:" line ahead of the rest of the section.
func (d *doc) atsSection(body string) {
	var rest []string
	scoreLine := ""
	for _, line := range strings.Split(body, "\n") {
		if scoreLine == "" && strings.Contains(line, "ATS Score:") {
			scoreLine = markdown.Clean(line)
			continue
		}
		rest = append(rest, line)
	}
	if scoreLine != "" {
		d.paragraph("normal", scoreLine, "L")
		d.space(6)
	}
	d.sectionBody(strings.Join(rest, "\n"))
}

// sectionBody renders list lines as bullets and everything else as paragraphs.
func (d *doc) sectionBody(body string) {
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if markdown.IsBullet(line) {
			text, _ := markdown.Item(line, false)
			d.bullet("normal", markdown.Clean(text), 12)
			continue
		}
		d.paragraph("normal", markdown.Clean(line), "L")
	}
}

func isDetailed(title string) bool {
	for _, t := range analyses.DetailedSections {
		if strings.EqualFold(t, title) {
			return true
		}
	}
	return false
}

func itemAt(items []string, i int) string {
	if i < len(items) {
		return items[i]
	}
	return ""
}

func bulletAt(items []string, i int) string {
	if i < len(items) {
		return bulletMark + markdown.Clean(items[i])
	}
	return ""
}
