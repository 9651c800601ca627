package report

import (
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses/recommendations"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/markdown"
)

// renderSimple is the fallback layout: plain lists and score bars, no gauges or grids.
func renderSimple(result *analyses.Result, meta Meta) ([]byte, error) {
	d := newDoc(inch)
	date := meta.GeneratedAt.Format(dateLayout)
	d.footer(date)
	d.pdf.AddPage()

	d.header(result, meta, date)

	d.heading("Resume Evaluation")
	d.scoreBar("Resume Score", result.Score)
	d.scoreBar("ATS Score", result.ATSScore)
	d.scoreBar("Overall Score", result.CombinedScore())
	d.space(14)

	sections := analyses.SplitSections(result.FullResponse)
	if overall := sections.Paragraph(analyses.SectionOverall); overall != "" {
		d.heading("Executive Summary")
		d.paragraph("normal", overall, "L")
		d.space(14)
	}

	d.heading("Key Strengths")
	d.list(result.Strengths, noStrengths)
	d.space(10)

	d.heading("Areas for Improvement")
	d.list(result.Weaknesses, noImprovements)
	d.space(10)

	for _, sec := range sections {
		if !isDetailed(sec.Title) {
			continue
		}
		d.subheading(sec.Title)
		d.paragraph("normal", markdown.Clean(sec.Body), "L")
		d.space(10)
	}

	d.heading(coursesTitle)
	if len(result.Suggestions) > 0 {
		d.list(result.Suggestions, "")
	} else {
		d.paragraph("normal", fallbackIntro, "L")
		d.list(recommendations.FallbackCourses(meta.JobRole), "")
	}

	return d.bytes()
}

func (d *doc) list(items []string, empty string) {
	if len(items) == 0 {
		d.paragraph("normal", empty, "L")
		return
	}
	for _, item := range items {
		d.bullet("normal", markdown.Clean(item), 12)
	}
}
