package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetentionPolicy bounds how much a briefing cache keeps. Zero fields
// disable their rule.
type RetentionPolicy struct {
	// MaxAge removes briefings last written longer ago than this.
	MaxAge time.Duration

	// MaxEntries keeps only the most recently written briefings.
	MaxEntries int
}

// PruneResult reports what a prune removed.
type PruneResult struct {
	Removed    []string
	Kept       int
	BytesFreed int64
}

// Prune applies policy to cache. Entries are judged by age first, then by
// count among the survivors, newest first. A failed delete does not stop
// the others; every failure is returned joined.
func Prune(ctx context.Context, cache BriefingCache, policy RetentionPolicy, now time.Time) (PruneResult, error) {
	var result PruneResult
	if policy.MaxAge < 0 || policy.MaxEntries < 0 {
		return result, fmt.Errorf("%w: negative retention policy", ErrInvalidInput)
	}

	entries, err := cache.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list cache: %w", err)
	}

	var expired []Entry
	kept := 0
	for _, e := range entries {
		switch {
		case policy.MaxAge > 0 && now.Sub(e.UpdatedAt) > policy.MaxAge:
			expired = append(expired, e)
		case policy.MaxEntries > 0 && kept >= policy.MaxEntries:
			expired = append(expired, e)
		default:
			kept++
		}
	}

	var errs []error
	for _, e := range expired {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := cache.Delete(ctx, e.Key); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", e.Key, err))
			kept++
			continue
		}
		result.Removed = append(result.Removed, e.Key)
		result.BytesFreed += e.Size
	}
	result.Kept = kept
	return result, errors.Join(errs...)
}
