package llm

import (
	"context"
	"errors"
	"time"
)

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey  string
	Model   string        // default: gpt-4o-mini
	BaseURL string        // default: https://api.openai.com
	Timeout time.Duration // default: 60s
}

// OpenAIClient implements TextGenerator using the chat completions API.
// Any OpenAI-compatible server works through BaseURL.
type OpenAIClient struct {
	httpProvider
	cfg OpenAIConfig
}

// NewOpenAIClient creates a new OpenAI client with the given configuration.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &OpenAIClient{
		httpProvider: newHTTPProvider("openai", cfg.Timeout),
		cfg:          cfg,
	}
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single-turn chat completion and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, func(ctx context.Context) (string, error) {
		var resp openAIChatResponse
		err := c.postJSON(ctx, c.cfg.BaseURL+"/v1/chat/completions", map[string]string{
			"Authorization": "Bearer " + c.cfg.APIKey,
		}, openAIChatRequest{
			Model:    c.cfg.Model,
			Messages: []openAIChatMessage{{Role: "user", Content: prompt}},
		}, &resp)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("no choices")
		}
		return resp.Choices[0].Message.Content, nil
	})
}

// GetModel returns the configured model name.
func (c *OpenAIClient) GetModel() string {
	return c.cfg.Model
}

var _ TextGenerator = (*OpenAIClient)(nil)
