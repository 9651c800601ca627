package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const sampleAnalysis = `## Overall Assessment
Solid backend profile with measurable impact.

## Key Strengths
- **Go** services at scale
- *Postgres* tuning
- Clear [portfolio](https://example.com)

## Areas for Improvement
- Missing cloud certifications

## ATS Optimization Assessment
**ATS Score:** 72/100
- Uses standard headings

## Recommended Courses/Certifications
- AWS Solutions Architect - Coursera

## Resume Score
**Resume Score:** 84/100`

type recordingClient struct {
	mu    sync.Mutex
	name  string
	reply string
	err   error
	calls [][]llm.Message
}

func (c *recordingClient) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, messages)
	c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.reply, c.err
}

func (c *recordingClient) Name() string { return c.name }

func newTestService(client llm.Client) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{
		Repo:    repo,
		LLM:     llm.Resolver{Gemini: client, DefaultProvider: llm.ProviderGemini},
		Timeout: time.Second,
	}, repo
}

func TestEvaluateWithoutRoleOrDescriptionReachesClient(t *testing.T) {
	client := &recordingClient{name: llm.GeminiModelName, reply: sampleAnalysis}
	svc, _ := newTestService(client)

	res, err := svc.Evaluate(context.Background(), Request{ResumeText: "Jane Doe\nGo developer"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected one LLM call, got %d", len(client.calls))
	}
	prompt := client.calls[0][len(client.calls[0])-1].Content
	if !strings.Contains(prompt, "Jane Doe") {
		t.Fatalf("prompt does not carry the resume text")
	}
	if strings.Contains(prompt, "Job Match Analysis") || strings.Contains(prompt, "Role Alignment Analysis") {
		t.Fatalf("prompt should not ask for role or job sections")
	}
	if res.Failed() {
		t.Fatalf("unexpected error result: %s", res.Error)
	}
	if res.Score != 84 || res.ATSScore != 72 {
		t.Fatalf("scores = %d/%d, want 84/72", res.Score, res.ATSScore)
	}
	if len(res.Strengths) != 3 || res.Strengths[0] != "Go services at scale" || res.Strengths[2] != "Clear portfolio" {
		t.Fatalf("unexpected strengths: %#v", res.Strengths)
	}
	if res.ModelUsed != llm.GeminiModelName {
		t.Fatalf("modelUsed = %q", res.ModelUsed)
	}
}

func TestEvaluateRequiredSkillsExtendDescription(t *testing.T) {
	client := &recordingClient{name: llm.GeminiModelName, reply: sampleAnalysis}
	svc, _ := newTestService(client)

	_, err := svc.Evaluate(context.Background(), Request{
		ResumeText:     "resume",
		JobRole:        "Data Analyst",
		RequiredSkills: []string{"SQL", "Tableau"},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	prompt := client.calls[0][len(client.calls[0])-1].Content
	if !strings.Contains(prompt, "Required Skills: SQL, Tableau") {
		t.Fatalf("prompt missing role context: %s", prompt)
	}
}

func TestEvaluateEmptyResume(t *testing.T) {
	client := &recordingClient{name: llm.GeminiModelName}
	svc, _ := newTestService(client)

	res, err := svc.Evaluate(context.Background(), Request{ResumeText: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if res.Error != "Resume text is required for analysis." {
		t.Fatalf("unexpected error message %q", res.Error)
	}
	if len(client.calls) != 0 {
		t.Fatalf("client should not be called")
	}
}

func TestEvaluateNotConfigured(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	res, err := svc.Evaluate(context.Background(), Request{ResumeText: "resume"})
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if res.Error != "Google API key is not configured. Please add it to your .env file." {
		t.Fatalf("unexpected message %q", res.Error)
	}
	if res.ModelUsed != "Error" || res.Score != 0 || res.FullResponse != "Error: "+res.Error {
		t.Fatalf("unexpected error result %#v", res)
	}
	if len(res.Strengths) != 1 || res.Strengths[0] != "Unable to analyze resume due to an error." {
		t.Fatalf("unexpected strengths %#v", res.Strengths)
	}
}

func TestEvaluateAPIErrorIsPrefixed(t *testing.T) {
	client := &recordingClient{name: "gpt", err: errors.New("API Error: 401 - bad key")}
	svc, _ := newTestService(client)

	res, err := svc.Evaluate(context.Background(), Request{ResumeText: "resume"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.Error != "Analysis failed: API Error: 401 - bad key" {
		t.Fatalf("unexpected message %q", res.Error)
	}
}

func TestEvaluateLongErrorIsCutOnRuneBoundary(t *testing.T) {
	client := &recordingClient{name: "gpt", err: errors.New("API Error: 502 - " + strings.Repeat("é", 400))}
	svc, _ := newTestService(client)

	res, err := svc.Evaluate(context.Background(), Request{ResumeText: "resume"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !utf8.ValidString(res.Error) {
		t.Fatalf("error message is not valid UTF-8: %q", res.Error)
	}
	msg := strings.TrimPrefix(res.Error, "Analysis failed: ")
	if !strings.HasSuffix(msg, "...") || len(msg) > maxErrorLen+len("...") {
		t.Fatalf("unexpected truncation (%d bytes): %q", len(msg), msg)
	}
}

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: fmt.Errorf("%w: resume text is required", ErrInvalidInput), want: ErrorCodeValidation},
		{name: "timeout", err: llm.ErrTimeout, want: ErrorCodeLLMTimeout},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrorCodeLLMTimeout},
		{name: "not configured", err: llm.NotConfigured("GOOGLE_API_KEY is not set"), want: ErrorCodeLLM},
		{name: "empty response", err: llm.ErrEmptyResponse, want: ErrorCodeLLM},
		{name: "api error", err: errors.New("API Error: 500 - down"), want: ErrorCodeLLM},
		{name: "other", err: errors.New("disk full"), want: ErrorCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyFailure(tt.err); got != tt.want {
				t.Fatalf("classifyFailure() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeStoresCompletedAnalysis(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	client := &recordingClient{name: llm.GeminiModelName, reply: sampleAnalysis}
	svc, repo := newTestService(client)

	ctx := WithRequestID(context.Background(), "req-1")
	a, err := svc.Analyze(ctx, Request{ResumeText: "resume", CandidateName: " Jane ", JobRole: "Engineer"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Status != StatusCompleted || a.Result == nil || a.Result.Score != 84 {
		t.Fatalf("unexpected analysis %#v", a)
	}
	if a.CandidateName != "Jane" || a.Provider != llm.ProviderGemini || a.Model != llm.GeminiModelName {
		t.Fatalf("unexpected envelope %#v", a)
	}

	stored, err := repo.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != StatusCompleted || stored.CompletedAt == nil || stored.Result == nil {
		t.Fatalf("unexpected stored analysis %#v", stored)
	}

	entries := logs.FilterMessage("analysis.status").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 status logs, got %d", len(entries))
	}
	last := entries[1].ContextMap()
	if last["status_transition"] != "pending->completed" || last["request_id"] != "req-1" {
		t.Fatalf("unexpected log fields %#v", last)
	}
}

func TestAnalyzeFailureIsStoredWithCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "timeout", err: fmt.Errorf("%w: deadline", llm.ErrTimeout), code: ErrorCodeLLMTimeout},
		{name: "api", err: errors.New("API Error: 500 - upstream"), code: ErrorCodeLLM},
		{name: "empty", err: llm.ErrEmptyResponse, code: ErrorCodeLLM},
		{name: "other", err: errors.New("boom"), code: ErrorCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &recordingClient{name: "model", err: tt.err}
			svc, repo := newTestService(client)

			a, err := svc.Analyze(context.Background(), Request{ResumeText: "resume"})
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if a.Status != StatusFailed || a.ErrorCode != tt.code {
				t.Fatalf("status=%s code=%s, want failed/%s", a.Status, a.ErrorCode, tt.code)
			}
			stored, _ := repo.GetByID(context.Background(), a.ID)
			if stored.ErrorMessage == "" || stored.Result == nil || !stored.Result.Failed() {
				t.Fatalf("failure not stored: %#v", stored)
			}
		})
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_ = repo.Create(context.Background(), Analysis{ID: fmt.Sprintf("a%d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	got, err := repo.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a2" || got[1].ID != "a1" {
		t.Fatalf("unexpected order %#v", got)
	}
	if err := repo.Complete(context.Background(), "missing", StatusCompleted, nil, "", "", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListClampsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 130; i++ {
		_ = repo.Create(context.Background(), Analysis{ID: fmt.Sprintf("a%03d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	for _, tc := range []struct{ limit, want int }{{0, 20}, {-5, 20}, {500, 100}, {7, 7}} {
		got, err := repo.List(context.Background(), tc.limit, 0)
		if err != nil {
			t.Fatalf("List(%d): %v", tc.limit, err)
		}
		if len(got) != tc.want {
			t.Fatalf("List(%d) returned %d rows, want %d", tc.limit, len(got), tc.want)
		}
	}
}
