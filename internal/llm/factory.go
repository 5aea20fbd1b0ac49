package llm

import (
	"context"
	"fmt"

	"github.com/scrypster/navigator/internal/config"
)

// NewTextGenerator builds the configured provider, wrapped in the rate
// limiter. Provider "none" returns (nil, nil): the pipeline then runs on its
// deterministic paths only.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (TextGenerator, error) {
	var gen TextGenerator
	switch cfg.Provider {
	case "none", "":
		return nil, nil
	case "anthropic":
		gen = NewAnthropicClient(AnthropicConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	case "openai":
		gen = NewOpenAIClient(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	case "ollama":
		gen = NewOllamaClient(OllamaConfig{BaseURL: cfg.BaseURL, Model: cfg.Model, Timeout: cfg.Timeout})
	case "gemini":
		g, err := NewGeminiClient(ctx, GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model, Timeout: cfg.Timeout})
		if err != nil {
			return nil, err
		}
		gen = g
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
	return WithRateLimit(gen, cfg.RequestsPerSec, cfg.Burst), nil
}
