package llm

import (
	"context"
	"errors"
	"time"
)

// AnthropicConfig holds configuration for the Anthropic client.
type AnthropicConfig struct {
	APIKey    string
	Model     string        // default: claude-3-5-sonnet-20240620
	BaseURL   string        // default: https://api.anthropic.com
	MaxTokens int           // default: 1000
	Timeout   time.Duration // default: 60s
}

// AnthropicClient implements TextGenerator using the Anthropic Messages API.
type AnthropicClient struct {
	httpProvider
	cfg AnthropicConfig
}

// NewAnthropicClient creates a new Anthropic client with the given configuration.
func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-sonnet-20240620"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &AnthropicClient{
		httpProvider: newHTTPProvider("anthropic", cfg.Timeout),
		cfg:          cfg,
	}
}

type anthropicMessagesRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicMessagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends a single-turn message and returns the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, func(ctx context.Context) (string, error) {
		var resp anthropicMessagesResponse
		err := c.postJSON(ctx, c.cfg.BaseURL+"/v1/messages", map[string]string{
			"x-api-key":         c.cfg.APIKey,
			"anthropic-version": "2023-06-01",
		}, anthropicMessagesRequest{
			Model:     c.cfg.Model,
			MaxTokens: c.cfg.MaxTokens,
			Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		}, &resp)
		if err != nil {
			return "", err
		}
		if len(resp.Content) == 0 {
			return "", errors.New("empty content")
		}
		return resp.Content[0].Text, nil
	})
}

// GetModel returns the configured model name.
func (c *AnthropicClient) GetModel() string {
	return c.cfg.Model
}

var _ TextGenerator = (*AnthropicClient)(nil)
