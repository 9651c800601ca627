package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/metrics"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const (
	msgResumeRequired = "Resume text is required for analysis."
	msgFailedPrefix   = "Analysis failed: "
	maxErrorLen       = 500
)

// Request carries one analysis call.
type Request struct {
	ResumeText     string
	JobRole        string
	JobDescription string
	RequiredSkills []string
	// Model selects the backend. Empty means the configured default.
	Model         string
	CandidateName string
}

// Service contains business logic for analyses.
type Service struct {
	Repo    Repo
	LLM     llm.Resolver
	Timeout time.Duration
}

// Evaluate runs one analysis without storing it. A failure is reported both as an
// error and as a Result carrying the error message.
func (s *Service) Evaluate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return ErrorResult(msgResumeRequired), fmt.Errorf("%w: %s", ErrInvalidInput, msgResumeRequired)
	}

	jobDescription := req.JobDescription
	if len(req.RequiredSkills) > 0 {
		jobDescription = llm.RoleContext(req.JobRole, req.JobDescription, req.RequiredSkills)
	}

	client, err := s.LLM.Resolve(req.Model)
	if err != nil {
		return ErrorResult(failureMessage(err)), err
	}

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	text, err := client.Generate(callCtx, llm.AnalysisMessages(llm.AnalyzeInput{
		ResumeText:     req.ResumeText,
		JobRole:        req.JobRole,
		JobDescription: jobDescription,
	}))
	if err != nil {
		return ErrorResult(failureMessage(err)), err
	}
	return ParseResponse(text, client.Name()), nil
}

// Analyze evaluates a resume and stores the outcome. The returned Analysis is
// persisted even when the analysis failed; err is only set for storage failures.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	analysis := Analysis{
		ID:             uuid.NewString(),
		CandidateName:  strings.TrimSpace(req.CandidateName),
		JobRole:        strings.TrimSpace(req.JobRole),
		JobDescription: req.JobDescription,
		Provider:       providerFor(req.Model, s.LLM.DefaultProvider),
		Model:          req.Model,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	metrics.IncAnalysisStarted()
	logTransition(ctx, analysis.ID, "", StatusPending, nil)

	start := time.Now()
	result, evalErr := s.Evaluate(ctx, req)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))

	status := StatusCompleted
	var errorCode, errorMessage string
	if evalErr != nil {
		status = StatusFailed
		errorCode = classifyFailure(evalErr)
		errorMessage = result.Error
		metrics.IncAnalysisFailed(errorCode)
	} else {
		metrics.IncAnalysisCompleted()
	}
	if analysis.Model == "" {
		analysis.Model = result.ModelUsed
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, analysis.ID, status, &result, errorCode, errorMessage, completedAt); err != nil {
		return Analysis{}, err
	}
	logTransition(ctx, analysis.ID, StatusPending, status, map[string]any{
		"error_code":  errorCode,
		"model":       result.ModelUsed,
		"score":       result.Score,
		"ats_score":   result.ATSScore,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	analysis.Status = status
	analysis.Result = &result
	analysis.ErrorCode = errorCode
	analysis.ErrorMessage = errorMessage
	analysis.CompletedAt = &completedAt
	return analysis, nil
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns stored analyses, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return s.Repo.List(ctx, limit, offset)
}

func logTransition(ctx context.Context, analysisID, from, to string, extra map[string]any) {
	fields := map[string]any{
		"analysis_id":       analysisID,
		"status_transition": from + "->" + to,
	}
	if requestID := requestIDFromContext(ctx); requestID != "" {
		fields["request_id"] = requestID
	}
	for k, v := range extra {
		fields[k] = v
	}
	telemetry.Info("analysis.status", fields)
}

// classifyFailure maps an analysis error to its error code.
func classifyFailure(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return ErrorCodeValidation
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeLLMTimeout
	case errors.Is(err, llm.ErrNotConfigured), errors.Is(err, llm.ErrEmptyResponse):
		return ErrorCodeLLM
	case strings.Contains(err.Error(), "API Error"):
		return ErrorCodeLLM
	default:
		return ErrorCodeInternal
	}
}

// failureMessage is the text placed on the error result. Configuration problems
// are shown as-is so the user knows which key to set.
func failureMessage(err error) string {
	if errors.Is(err, llm.ErrNotConfigured) {
		return sanitizeError(err)
	}
	return msgFailedPrefix + sanitizeError(err)
}

func sanitizeError(err error) string {
	msg := strings.TrimSpace(err.Error())
	msg = strings.ReplaceAll(msg, "\n", " ")
	if len(msg) > maxErrorLen {
		cut := maxErrorLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	return msg
}

func providerFor(model, defaultProvider string) string {
	if strings.TrimSpace(model) == "" {
		if defaultProvider == "" {
			return llm.ProviderGemini
		}
		return defaultProvider
	}
	if llm.IsGemini(model) {
		return llm.ProviderGemini
	}
	return llm.ProviderOpenRouter
}
