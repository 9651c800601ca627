package analyses

import (
	"strings"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/markdown"
)

const (
	SectionOverall        = "Overall Assessment"
	SectionProfile        = "Professional Profile Analysis"
	SectionSkills         = "Skills Analysis"
	SectionExperience     = "Experience Analysis"
	SectionEducation      = "Education Analysis"
	SectionStrengths      = "Key Strengths"
	SectionImprovements   = "Areas for Improvement"
	SectionATS            = "ATS Optimization Assessment"
	SectionCourses        = "Recommended Courses"
	SectionVideos         = "Recommended Videos"
	SectionResumeScore    = "Resume Score"
	SectionRoleAlignment  = "Role Alignment Analysis"
	SectionJobMatch       = "Job Match Analysis"
	SectionJobRequirement = "Key Job Requirements Not Met"
)

// DetailedSections are rendered one by one under "Detailed Analysis" in the report.
var DetailedSections = []string{
	SectionProfile,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionATS,
	SectionRoleAlignment,
	SectionJobMatch,
}

// Section is one "##" block of an LLM response.
type Section struct {
	Title string
	Body  string
}

// Sections keeps response sections in document order.
type Sections []Section

// SplitSections splits text on lines beginning with "##". Text before the first heading is dropped.
func SplitSections(text string) Sections {
	var out Sections
	var current *Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		out = append(out, *current)
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "##") {
			flush()
			current = &Section{Title: markdown.HeadingTitle(line)}
			body = body[:0]
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()
	return out
}

// Get returns the section whose title equals title, ignoring case, or failing that
// the first one that starts with it.
func (s Sections) Get(title string) (Section, bool) {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, sec := range s {
		if strings.ToLower(sec.Title) == want {
			return sec, true
		}
	}
	for _, sec := range s {
		if strings.HasPrefix(strings.ToLower(sec.Title), want) {
			return sec, true
		}
	}
	return Section{}, false
}

// Bullets returns the cleaned bullet items of a section.
func (s Sections) Bullets(title string) []string {
	sec, ok := s.Get(title)
	if !ok {
		return []string{}
	}
	return ExtractBullets(sec.Body)
}

// Paragraph returns the section body with markdown removed.
func (s Sections) Paragraph(title string) string {
	sec, ok := s.Get(title)
	if !ok {
		return ""
	}
	return CleanMarkdown(sec.Body)
}

// ExtractBullets keeps lines starting with -, * or • and strips their marker and emphasis.
func ExtractBullets(body string) []string {
	return markdown.Items(body, false)
}

// CleanMarkdown strips emphasis, leading "#" and links.
func CleanMarkdown(text string) string {
	return markdown.Clean(text)
}

// ParseResponse turns a raw LLM response into a Result.
func ParseResponse(text, modelUsed string) Result {
	return Result{
		Score:        ExtractScore(text),
		ATSScore:     ExtractATSScore(text),
		Strengths:    sectionBullets(text, SectionStrengths),
		Weaknesses:   sectionBullets(text, SectionImprovements),
		Suggestions:  sectionBullets(text, SectionCourses),
		FullResponse: text,
		ModelUsed:    modelUsed,
	}
}

// sectionBullets reads the bullets following "## <heading>" up to the next "##".
// The heading is matched as a prefix, so "Recommended Courses" also finds
// "Recommended Courses/Certifications".
func sectionBullets(text, heading string) []string {
	body, ok := markdown.After(text, "## "+heading)
	if !ok {
		return []string{}
	}
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	return ExtractBullets(body)
}
