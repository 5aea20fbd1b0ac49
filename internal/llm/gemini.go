package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey  string
	Model   string        // default: gemini-2.5-flash
	Timeout time.Duration // default: 60s
}

// GeminiClient implements TextGenerator using the Google GenAI SDK.
type GeminiClient struct {
	client  *genai.Client
	cfg     GeminiConfig
	breaker *CircuitBreaker
}

// NewGeminiClient creates a Gemini client. The API key is required.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		cfg:     cfg,
		breaker: NewCircuitBreaker("gemini"),
	}, nil
}

// Complete asks for a JSON response and returns the concatenated text parts.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := c.breaker.Execute(ctx, func() (string, error) {
		ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return "", err
		}
		out := resp.Text()
		if out == "" {
			return "", errors.New("empty response")
		}
		return out, nil
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return text, nil
}

// GetModel returns the configured model name.
func (c *GeminiClient) GetModel() string {
	return c.cfg.Model
}

var _ TextGenerator = (*GeminiClient)(nil)
