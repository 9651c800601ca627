package llm

import (
	_ "embed"
	"strings"
	"text/template"
)

var (
	//go:embed prompts/analysis.txt
	analysisPrompt string
	//go:embed prompts/tailor.txt
	tailorPrompt string
	//go:embed prompts/ocr.txt
	ocrPrompt string

	analysisTmpl = template.Must(template.New("analysis").Parse(analysisPrompt))
	tailorTmpl   = template.Must(template.New("tailor").Parse(tailorPrompt))
)

const (
	analystSystemPrompt = "You are an expert resume analyst."
	writerSystemPrompt  = "You are an expert resume writer."
)

// AnalyzeInput captures the inputs needed for resume analysis.
type AnalyzeInput struct {
	ResumeText     string
	JobRole        string
	JobDescription string
}

// BuildAnalysisPrompt renders the analysis prompt. The role alignment and job match
// sections are only requested when a role or job description is present.
func BuildAnalysisPrompt(input AnalyzeInput) string {
	var b strings.Builder
	data := AnalyzeInput{
		ResumeText:     input.ResumeText,
		JobRole:        strings.TrimSpace(input.JobRole),
		JobDescription: strings.TrimSpace(input.JobDescription),
	}
	if err := analysisTmpl.Execute(&b, data); err != nil {
		// The template only reads string fields.
		panic(err)
	}
	return b.String()
}

// AnalysisMessages returns the chat turns for an analysis request.
func AnalysisMessages(input AnalyzeInput) []Message {
	return []Message{
		{Role: RoleSystem, Content: analystSystemPrompt},
		{Role: RoleUser, Content: BuildAnalysisPrompt(input)},
	}
}

// TailorMessages returns the chat turns asking for a resume rewritten against a job description.
func TailorMessages(resumeText, jobDescription string) []Message {
	var b strings.Builder
	data := AnalyzeInput{ResumeText: resumeText, JobDescription: jobDescription}
	if err := tailorTmpl.Execute(&b, data); err != nil {
		panic(err)
	}
	return []Message{
		{Role: RoleSystem, Content: writerSystemPrompt},
		{Role: RoleUser, Content: b.String()},
	}
}

// OCRInstruction is the transcription instruction sent alongside scanned documents.
func OCRInstruction() string {
	return strings.TrimSpace(ocrPrompt)
}

// RoleContext builds a job description from a role and its catalog details.
// It returns "" when neither a description nor skills are given.
func RoleContext(jobRole, description string, requiredSkills []string) string {
	description = strings.TrimSpace(description)
	skills := make([]string, 0, len(requiredSkills))
	for _, s := range requiredSkills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	if description == "" && len(skills) == 0 {
		return ""
	}
	return "Role: " + strings.TrimSpace(jobRole) + "\n" +
		"Description: " + description + "\n" +
		"Required Skills: " + strings.Join(skills, ", ")
}
