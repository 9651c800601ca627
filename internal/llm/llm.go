package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// GeminiModelName is the model label used for the Gemini backend.
const GeminiModelName = "Google Gemini"

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	// ErrNotConfigured is matched by errors raised when a backend is missing credentials.
	ErrNotConfigured = errors.New("llm provider not configured")
	// ErrTimeout marks a request that ran past its deadline.
	ErrTimeout = errors.New("llm request timeout")
	// ErrEmptyResponse is returned when the provider answered without content.
	ErrEmptyResponse = errors.New("llm response empty")
)

// Message is one chat turn sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts LLM providers.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	// Name is the model label recorded on results.
	Name() string
}

type notConfiguredError struct {
	msg string
}

func (e *notConfiguredError) Error() string { return e.msg }

func (e *notConfiguredError) Is(target error) bool { return target == ErrNotConfigured }

// NotConfigured returns an error matching ErrNotConfigured that carries a user facing message.
func NotConfigured(msg string) error {
	return &notConfiguredError{msg: msg}
}

// Resolver picks a backend for a requested model name.
type Resolver struct {
	Gemini Client
	// Compatible builds an OpenAI-compatible client for a model. Nil when no key is configured.
	Compatible      func(model string) (Client, error)
	DefaultProvider string
	DefaultModel    string
}

// Resolve returns the client for model. An empty model selects the default provider.
func (r Resolver) Resolve(model string) (Client, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		if r.DefaultProvider == ProviderOpenRouter {
			model = r.DefaultModel
		} else {
			model = GeminiModelName
		}
	}

	if IsGemini(model) {
		if r.Gemini == nil {
			return nil, NotConfigured("Google API key is not configured. Please add it to your .env file.")
		}
		return r.Gemini, nil
	}

	if r.Compatible == nil {
		return nil, NotConfigured("Base URL and API Key are required.")
	}
	client, err := r.Compatible(model)
	if err != nil {
		return nil, fmt.Errorf("resolve model %s: %w", model, err)
	}
	return client, nil
}

// IsGemini reports whether a model name selects the Gemini backend.
func IsGemini(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	return m == strings.ToLower(GeminiModelName) || m == ProviderGemini || strings.HasPrefix(m, "gemini-")
}
