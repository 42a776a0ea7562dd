package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned when a client is requested without credentials.
var ErrNoAPIKey = errors.New("API key is required")

// Client is an abstraction over the model provider.
type Client interface {
	// GenerateContent generates free text.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error)
	// GenerateJSON generates a JSON document with any markdown wrapping removed.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

func (c *GeminiClient) model(tier ModelTier, opts []Option) (*genai.GenerativeModel, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(o.temperature)
	model.SetTopP(o.topP)
	if o.maxTokens > 0 {
		model.SetMaxOutputTokens(o.maxTokens)
	}
	if o.system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(o.system)}}
	}
	return model, nil
}

// GenerateContent implements Client.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error) {
	model, err := c.model(tier, opts)
	if err != nil {
		return "", err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GenerateJSON implements Client.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error) {
	model, err := c.model(tier, opts)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.config.Timeout)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response (finish reason %v)", candidate.FinishReason)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}

// Source records where a generated result came from.
type Source string

// Source values
const (
	SourceAI       Source = "ai"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)
