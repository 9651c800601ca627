package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const DefaultModel = "gemini-2.0-flash"

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client talks to the Gemini API. It serves analysis, tailoring and OCR.
type Client struct {
	generate generateFunc
	model    string
}

// New creates a Gemini client for apiKey.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.NotConfigured("Google API key is not configured. Please add it to your .env file.")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{generate: client.Models.GenerateContent, model: model}, nil
}

// Name returns the label recorded as the model used.
func (c *Client) Name() string {
	return llm.GeminiModelName
}

// Generate sends user turns as contents and system turns as the system instruction.
func (c *Client) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	if len(contents) == 0 {
		return "", errors.New("gemini: no user content")
	}

	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}
	return c.run(ctx, "generate", contents, config)
}

// Transcribe sends a scanned document inline and asks for its text.
func (c *Client) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("gemini: empty document")
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(llm.OCRInstruction()),
		}, genai.RoleUser),
	}
	temp := float32(0)
	return c.run(ctx, "ocr", contents, &genai.GenerateContentConfig{Temperature: &temp})
}

func (c *Client) run(ctx context.Context, op string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	start := time.Now()
	resp, err := c.generate(ctx, c.model, contents, config)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: gemini %s: %v", llm.ErrTimeout, op, err)
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("gemini %s: API Error: %d - %s", op, apiErr.Code, strings.TrimSpace(apiErr.Message))
		}
		return "", fmt.Errorf("gemini %s: %w", op, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: gemini %s returned nil response", llm.ErrEmptyResponse, op)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: gemini %s", llm.ErrEmptyResponse, op)
	}

	telemetry.Info("llm.response", map[string]any{
		"model":       c.model,
		"op":          op,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return text, nil
}

var _ llm.Client = (*Client)(nil)
