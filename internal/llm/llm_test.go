package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct{ name string }

func (s stubClient) Generate(ctx context.Context, messages []Message) (string, error) {
	return "", nil
}

func (s stubClient) Name() string { return s.name }

func TestBuildAnalysisPromptWithoutRoleOrJD(t *testing.T) {
	prompt := BuildAnalysisPrompt(AnalyzeInput{ResumeText: "Jane Doe, Go engineer"})

	assert.Contains(t, prompt, "## Resume Score")
	assert.Contains(t, prompt, "ATS Score: XX/100")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "Jane Doe, Go engineer"))
	assert.NotContains(t, prompt, "## Role Alignment Analysis")
	assert.NotContains(t, prompt, "## Job Match Analysis")
}

func TestBuildAnalysisPromptAppendsRoleAndJD(t *testing.T) {
	prompt := BuildAnalysisPrompt(AnalyzeInput{
		ResumeText:     "resume",
		JobRole:        " Data Scientist ",
		JobDescription: "Build models",
	})

	assert.Contains(t, prompt, "The candidate is targeting a role as: Data Scientist")
	assert.Contains(t, prompt, "aligns with the target role of Data Scientist.")
	assert.Contains(t, prompt, "Job Description:\nBuild models")
	assert.Contains(t, prompt, "## Key Job Requirements Not Met")
	assert.Less(t, strings.Index(prompt, "## Role Alignment Analysis"), strings.Index(prompt, "## Job Match Analysis"))
}

func TestAnalysisMessages(t *testing.T) {
	msgs := AnalysisMessages(AnalyzeInput{ResumeText: "resume"})
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: "You are an expert resume analyst."}, msgs[0])
	assert.Equal(t, RoleUser, msgs[1].Role)
}

func TestTailorMessages(t *testing.T) {
	msgs := TailorMessages("my resume", "the job")
	require.Len(t, msgs, 2)
	assert.Equal(t, "You are an expert resume writer.", msgs[0].Content)
	assert.Contains(t, msgs[1].Content, "Original Resume:\nmy resume")
	assert.Contains(t, msgs[1].Content, "Job Description:\nthe job")
	assert.Contains(t, msgs[1].Content, "MUST BE A MARKDOWN TABLE")
}

func TestRoleContext(t *testing.T) {
	got := RoleContext("Backend Developer", "Builds APIs", []string{"Go", " ", "SQL"})
	assert.Equal(t, "Role: Backend Developer\nDescription: Builds APIs\nRequired Skills: Go, SQL", got)
	assert.Equal(t, "", RoleContext("Backend Developer", "", nil))
}

func TestResolve(t *testing.T) {
	gemini := stubClient{name: GeminiModelName}
	r := Resolver{
		Gemini: gemini,
		Compatible: func(model string) (Client, error) {
			return stubClient{name: model}, nil
		},
		DefaultProvider: ProviderGemini,
		DefaultModel:    "meta-llama/llama-3.3-70b-instruct:free",
	}

	c, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, GeminiModelName, c.Name())

	c, err = r.Resolve("Google Gemini")
	require.NoError(t, err)
	assert.Equal(t, GeminiModelName, c.Name())

	c, err = r.Resolve("mistralai/mistral-7b-instruct")
	require.NoError(t, err)
	assert.Equal(t, "mistralai/mistral-7b-instruct", c.Name())

	r.DefaultProvider = ProviderOpenRouter
	c, err = r.Resolve(" ")
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct:free", c.Name())
}

func TestResolveNotConfigured(t *testing.T) {
	_, err := Resolver{}.Resolve("Google Gemini")
	require.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, "Google API key is not configured. Please add it to your .env file.", err.Error())

	_, err = Resolver{}.Resolve("openai/gpt-4o-mini")
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "Base URL and API Key are required.", err.Error())
}
