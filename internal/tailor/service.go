// Package tailor rewrites a resume against a job description and renders the result.
package tailor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyOutput  = errors.New("tailored resume empty")
)

// Request carries one tailoring call.
type Request struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	Model          string `json:"model"`
}

// Service asks the configured LLM for a tailored markdown resume.
type Service struct {
	LLM     llm.Resolver
	Timeout time.Duration
}

// Tailor returns the rewritten resume as markdown.
func (s *Service) Tailor(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return "", fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return "", fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}

	client, err := s.LLM.Resolve(req.Model)
	if err != nil {
		return "", err
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := client.Generate(ctx, llm.TailorMessages(req.ResumeText, req.JobDescription))
	if err != nil {
		telemetry.Warn("tailor.failed", map[string]any{"model": client.Name(), "err": err})
		return "", fmt.Errorf("tailor resume: %w", err)
	}

	md := stripFence(raw)
	if md == "" {
		return "", ErrEmptyOutput
	}
	telemetry.Info("tailor.completed", map[string]any{
		"model":       client.Name(),
		"chars":       len(md),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return md, nil
}

// stripFence removes a ``` or ```markdown wrapper around the whole response.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.Index(s, "\n")
	if nl < 0 {
		return ""
	}
	s = s[nl+1:]
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
