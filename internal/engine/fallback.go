package engine

import (
	"context"
	"fmt"

	"github.com/scrypster/navigator/internal/logging"
)

// enhancer is an optional enhanced path, usually an LLM call.
type enhancer[T any] func(ctx context.Context) (T, error)

// withFallback runs enhanced and returns its result, or the deterministic
// fallback when enhanced is nil, fails, or panics. The second return value
// reports whether the enhanced result was used. Failures are logged at warn
// level and never surface to the caller.
func withFallback[T any](ctx context.Context, component string, enhanced enhancer[T], fallback func() T) (T, bool) {
	if enhanced == nil {
		emitToContext(ctx, EventFallbackUsed(component, "not configured"))
		return fallback(), false
	}

	out, err := runRecovered(ctx, enhanced)
	if err != nil {
		logging.For(component).Warn("enhanced path failed, using fallback", "err", err)
		emitToContext(ctx, EventFallbackUsed(component, err.Error()))
		return fallback(), false
	}
	return out, true
}

func runRecovered[T any](ctx context.Context, fn enhancer[T]) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
