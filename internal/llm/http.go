package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// httpProvider is the transport shared by the JSON-over-HTTP providers.
type httpProvider struct {
	name    string
	client  *http.Client
	timeout time.Duration
	breaker *CircuitBreaker
}

func newHTTPProvider(name string, timeout time.Duration) httpProvider {
	return httpProvider{
		name:    name,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		breaker: NewCircuitBreaker(name),
	}
}

// call runs do through the breaker and names the provider in errors.
func (p httpProvider) call(ctx context.Context, do func(ctx context.Context) (string, error)) (string, error) {
	text, err := p.breaker.Execute(ctx, func() (string, error) {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return do(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	return text, nil
}

// postJSON marshals body, POSTs it to url and decodes a 200 response into out.
func (p httpProvider) postJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("returned status %d: %s", resp.StatusCode, string(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
