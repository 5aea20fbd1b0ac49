package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/navigator/internal/config"
)

func TestAnthropicClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))

		var req anthropicMessagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Messages[0].Content)
		assert.Equal(t, 1000, req.MaxTokens)

		_, _ = w.Write([]byte(`{"content": [{"text": "{\"ok\": true}"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{APIKey: "secret", BaseURL: srv.URL})
	out, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
}

func TestOpenAIClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "[]"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})
	out, err := c.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, "gpt-4o-mini", c.GetModel())
}

func TestOllamaClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(OllamaConfig{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama")
	assert.Contains(t, err.Error(), "404")
}

func TestOllamaClient_BreakerOpensOnRepeatedFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOllamaClient(OllamaConfig{BaseURL: srv.URL})
	for i := 0; i < 5; i++ {
		_, _ = c.Complete(context.Background(), "p")
	}
	assert.Equal(t, 3, hits)
	_, err := c.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestNewTextGenerator(t *testing.T) {
	gen, err := NewTextGenerator(context.Background(), config.LLMConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, gen)

	gen, err = NewTextGenerator(context.Background(), config.LLMConfig{Provider: "ollama", RequestsPerSec: 2, Burst: 1})
	require.NoError(t, err)
	assert.IsType(t, &RateLimitedGenerator{}, gen)
	assert.Equal(t, "qwen2.5:7b", gen.GetModel())

	_, err = NewTextGenerator(context.Background(), config.LLMConfig{Provider: "gemini"})
	assert.Error(t, err, "gemini requires an API key")

	_, err = NewTextGenerator(context.Background(), config.LLMConfig{Provider: "mystery"})
	assert.Error(t, err)
}
