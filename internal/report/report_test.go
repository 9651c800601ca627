package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
)

const fullResponse = `## Overall Assessment
A focused backend engineer with strong delivery and café-grade polish.

## Professional Profile Analysis
- Clear progression from developer to lead
Summary paragraph that wraps across several words to make the cell wrap nicely.

## Skills Analysis
**Current Skills:**
- Go
- PostgreSQL
**Missing Skills:**
- Kubernetes

## Key Strengths
- Go services at scale
- Postgres tuning

## Areas for Improvement
- Missing cloud certifications

## ATS Optimization Assessment
- Uses standard headings
**ATS Score:** 72/100

## Recommended Courses/Certifications
- AWS Solutions Architect - Coursera

## Resume Score
**Resume Score:** 84/100`

func sampleResult() *analyses.Result {
	r := analyses.ParseResponse(fullResponse, "Google Gemini")
	return &r
}

var fixedMeta = Meta{
	CandidateName: "Jane Doe",
	JobRole:       "Backend Engineer",
	GeneratedAt:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
}

func TestGenerateProducesPDF(t *testing.T) {
	data := Generate(sampleResult(), fixedMeta)
	require.NotNil(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateWithoutSuggestionsUsesFallbackCourses(t *testing.T) {
	r := sampleResult()
	r.Suggestions = nil
	r.Strengths = nil
	r.Weaknesses = nil
	data := Generate(r, Meta{JobRole: "Data Analyst"})
	require.NotNil(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateRejectsUnusableResults(t *testing.T) {
	assert.Nil(t, Generate(nil, fixedMeta))
	assert.Nil(t, Generate(&analyses.Result{Error: "boom"}, fixedMeta))
}

func TestGenerateRendersErrorResult(t *testing.T) {
	r := analyses.ErrorResult("API Error: 500 - upstream")
	data := Generate(&r, fixedMeta)
	require.NotNil(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateMalformedResponseDoesNotPanic(t *testing.T) {
	r := &analyses.Result{FullResponse: "##\n## \n- \n|||\n**", ModelUsed: "m", Score: -5, ATSScore: 400}
	assert.NotPanics(t, func() {
		data := Generate(r, Meta{})
		if data != nil {
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		}
	})
}

func TestGenerateFallsBackToSimpleLayout(t *testing.T) {
	saved := layouts
	defer func() { layouts = saved }()

	var used []string
	layouts = []layout{
		{name: "rich", render: func(*analyses.Result, Meta) ([]byte, error) {
			used = append(used, "rich")
			panic("gauge exploded")
		}},
		{name: "simple", render: func(r *analyses.Result, m Meta) ([]byte, error) {
			used = append(used, "simple")
			return renderSimple(r, m)
		}},
	}

	data := Generate(sampleResult(), fixedMeta)
	require.NotNil(t, data)
	assert.Equal(t, []string{"rich", "simple"}, used)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateReturnsNilWhenAllLayoutsFail(t *testing.T) {
	saved := layouts
	defer func() { layouts = saved }()

	failing := func(*analyses.Result, Meta) ([]byte, error) { return nil, errors.New("no fonts") }
	layouts = []layout{{name: "rich", render: failing}, {name: "simple", render: failing}}

	assert.Nil(t, Generate(sampleResult(), fixedMeta))
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score int
		label string
		color rgb
	}{
		{score: 95, label: "Excellent", color: green},
		{score: 80, label: "Excellent", color: green},
		{score: 79, label: "Good", color: orange},
		{score: 60, label: "Good", color: orange},
		{score: 59, label: "Needs Improvement", color: red},
		{score: 0, label: "Needs Improvement", color: red},
	}
	for _, tt := range tests {
		label, color := scoreBand(tt.score)
		assert.Equal(t, tt.label, label, "score %d", tt.score)
		assert.Equal(t, tt.color, color, "score %d", tt.score)
	}
}

func TestCandidateName(t *testing.T) {
	assert.Equal(t, "Jane", candidateName(" Jane "))
	for _, in := range []string{"", "  ", "Candidate", "candidate"} {
		got := candidateName(in)
		assert.True(t, strings.HasPrefix(got, "Candidate_"), got)
		assert.Len(t, got, len("Candidate_")+4)
	}
	assert.Equal(t, "Not specified", targetRole(""))
	assert.Equal(t, "SRE", targetRole("SRE"))
}

func TestRendererUsesAnalysisMeta(t *testing.T) {
	r := Renderer{Now: func() time.Time { return fixedMeta.GeneratedAt }}
	data := r.RenderAnalysis(analyses.Analysis{CandidateName: "Jane", JobRole: "SRE", Result: sampleResult()})
	require.NotNil(t, data)
	assert.Nil(t, r.RenderAnalysis(analyses.Analysis{}))
}
