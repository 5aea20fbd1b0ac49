package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedGenerator throttles calls to a provider that enforces its own
// request quota. Calls wait for a token or fail when ctx ends first.
type RateLimitedGenerator struct {
	next    TextGenerator
	limiter *rate.Limiter
}

// WithRateLimit wraps next with a token bucket of rps requests per second
// and the given burst. A non-positive rps disables limiting.
func WithRateLimit(next TextGenerator, rps float64, burst int) TextGenerator {
	if next == nil || rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Complete waits for a token, then delegates.
func (g *RateLimitedGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return g.next.Complete(ctx, prompt)
}

// GetModel returns the wrapped provider's model.
func (g *RateLimitedGenerator) GetModel() string {
	return g.next.GetModel()
}

var _ TextGenerator = (*RateLimitedGenerator)(nil)
