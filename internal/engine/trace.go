package engine

import (
	"context"
	"sync"
	"time"
)

// TraceEventKind classifies each trace event by type.
type TraceEventKind string

const (
	// KindStageCompleted is emitted when a pipeline stage finishes.
	KindStageCompleted TraceEventKind = "stage_completed"

	// KindFallbackUsed is emitted when an enhanced path failed or was absent
	// and the deterministic fallback produced the result.
	KindFallbackUsed TraceEventKind = "fallback_used"

	// KindCacheHit is emitted when a briefing is served from the cache.
	KindCacheHit TraceEventKind = "cache_hit"
)

// TraceEvent is a single structured event emitted while building a briefing.
type TraceEvent struct {
	Kind TraceEventKind `json:"kind"`
	At   time.Time      `json:"at"`

	// Stage names the pipeline stage or fallback component.
	Stage string `json:"stage,omitempty"`

	// Count is stage specific: items surfaced, talking points produced.
	Count int `json:"count,omitempty"`

	// Duration is how long the stage took.
	Duration time.Duration `json:"duration,omitempty"`

	// Reason explains a fallback.
	Reason string `json:"reason,omitempty"`
}

func newTraceEvent(kind TraceEventKind) TraceEvent {
	return TraceEvent{Kind: kind, At: time.Now()}
}

// EventStageCompleted creates a stage_completed trace event.
func EventStageCompleted(stage string, count int, d time.Duration) TraceEvent {
	e := newTraceEvent(KindStageCompleted)
	e.Stage = stage
	e.Count = count
	e.Duration = d
	return e
}

// EventFallbackUsed creates a fallback_used trace event.
func EventFallbackUsed(component, reason string) TraceEvent {
	e := newTraceEvent(KindFallbackUsed)
	e.Stage = component
	e.Reason = reason
	return e
}

// EventCacheHit creates a cache_hit trace event.
func EventCacheHit(key string) TraceEvent {
	e := newTraceEvent(KindCacheHit)
	e.Stage = "cache"
	e.Reason = key
	return e
}

type contextKey string

const traceKey contextKey = "briefing_trace"

// TraceCollector accumulates TraceEvents. It is safe for concurrent use, so
// one collector may observe a whole batch.
type TraceCollector struct {
	mu        sync.Mutex
	events    []TraceEvent
	startedAt time.Time
}

// NewTraceCollector returns a fresh collector.
func NewTraceCollector() *TraceCollector {
	return &TraceCollector{startedAt: time.Now()}
}

// Emit appends an event to the collector.
func (tc *TraceCollector) Emit(e TraceEvent) {
	tc.mu.Lock()
	tc.events = append(tc.events, e)
	tc.mu.Unlock()
}

// Events returns a copy of the collected events in emission order.
func (tc *TraceCollector) Events() []TraceEvent {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]TraceEvent(nil), tc.events...)
}

// ElapsedMS returns the elapsed time since the collector was created, in milliseconds.
func (tc *TraceCollector) ElapsedMS() int64 {
	return time.Since(tc.startedAt).Milliseconds()
}

// WithTraceCollector stores a collector in the context.
func WithTraceCollector(ctx context.Context, tc *TraceCollector) context.Context {
	return context.WithValue(ctx, traceKey, tc)
}

// TraceCollectorFromContext retrieves the collector from the context.
// Returns (nil, false) if none is present.
func TraceCollectorFromContext(ctx context.Context) (*TraceCollector, bool) {
	tc, ok := ctx.Value(traceKey).(*TraceCollector)
	return tc, ok
}

// emitToContext emits only when a collector is present in the context.
func emitToContext(ctx context.Context, e TraceEvent) {
	if tc, ok := TraceCollectorFromContext(ctx); ok {
		tc.Emit(e)
	}
}

// TraceSummary is the structured view of a trace printed by the CLI.
type TraceSummary struct {
	Stages    []StageEntry    `json:"stages"`
	Fallbacks []FallbackEntry `json:"fallbacks"`
	CacheHits []string        `json:"cache_hits"`
	TimingMS  int64           `json:"timing_ms"`
}

// StageEntry is one completed stage.
type StageEntry struct {
	Stage      string `json:"stage"`
	Count      int    `json:"count"`
	DurationMS int64  `json:"duration_ms"`
}

// FallbackEntry records one degraded component.
type FallbackEntry struct {
	Component string `json:"component"`
	Reason    string `json:"reason"`
}

// BuildTraceSummary converts collected trace events into a TraceSummary.
func BuildTraceSummary(events []TraceEvent, elapsedMS int64) *TraceSummary {
	s := &TraceSummary{
		Stages:    []StageEntry{},
		Fallbacks: []FallbackEntry{},
		CacheHits: []string{},
		TimingMS:  elapsedMS,
	}
	for _, e := range events {
		switch e.Kind {
		case KindStageCompleted:
			s.Stages = append(s.Stages, StageEntry{Stage: e.Stage, Count: e.Count, DurationMS: e.Duration.Milliseconds()})
		case KindFallbackUsed:
			s.Fallbacks = append(s.Fallbacks, FallbackEntry{Component: e.Stage, Reason: e.Reason})
		case KindCacheHit:
			s.CacheHits = append(s.CacheHits, e.Reason)
		}
	}
	return s
}
