package llm

import (
	"context"
	"time"
)

// OllamaConfig holds Ollama client configuration.
type OllamaConfig struct {
	// BaseURL is the base URL for the Ollama API (default: http://localhost:11434)
	BaseURL string

	// Model is the model name (default: qwen2.5:7b)
	Model string

	// Timeout is the request timeout (default: 30s)
	Timeout time.Duration
}

// OllamaClient implements TextGenerator against a local Ollama server.
type OllamaClient struct {
	httpProvider
	cfg OllamaConfig
}

// NewOllamaClient creates a new Ollama client with the given configuration.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "qwen2.5:7b"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OllamaClient{
		httpProvider: newHTTPProvider("ollama", cfg.Timeout),
		cfg:          cfg,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Complete calls /api/generate without streaming.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, func(ctx context.Context) (string, error) {
		var resp ollamaGenerateResponse
		err := c.postJSON(ctx, c.cfg.BaseURL+"/api/generate", nil, ollamaGenerateRequest{
			Model:  c.cfg.Model,
			Prompt: prompt,
		}, &resp)
		if err != nil {
			return "", err
		}
		return resp.Response, nil
	})
}

// GetModel returns the configured model name.
func (c *OllamaClient) GetModel() string {
	return c.cfg.Model
}

var _ TextGenerator = (*OllamaClient)(nil)
