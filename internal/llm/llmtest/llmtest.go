// Package llmtest provides TextGenerator doubles for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"
)

// ErrUnavailable is returned by Failing.
var ErrUnavailable = errors.New("llmtest: generator unavailable")

// Mock is a testify mock of llm.TextGenerator.
type Mock struct {
	mock.Mock
}

// Complete records the call and returns the configured response.
func (m *Mock) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// GetModel returns "mock".
func (m *Mock) GetModel() string {
	return "mock"
}

// Failing fails every call and counts them.
type Failing struct {
	mu    sync.Mutex
	calls int
	Err   error
}

// Complete always returns Err, or ErrUnavailable when Err is nil.
func (f *Failing) Complete(context.Context, string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return "", ErrUnavailable
}

// GetModel returns "failing".
func (f *Failing) GetModel() string {
	return "failing"
}

// Calls returns how many times Complete ran.
func (f *Failing) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Panicking panics on every call.
type Panicking struct{}

// Complete panics.
func (Panicking) Complete(context.Context, string) (string, error) {
	panic("llmtest: provider exploded")
}

// GetModel returns "panicking".
func (Panicking) GetModel() string {
	return "panicking"
}

// Func adapts a function to a TextGenerator.
type Func func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f Func) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GetModel returns "func".
func (f Func) GetModel() string {
	return "func"
}
