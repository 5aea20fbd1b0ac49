// Package storage defines the briefing cache collaborator and its key
// canonicalization. Backends live in subpackages: filecache (one JSON file
// per key), sqlite and postgres. Every backend stores a briefing verbatim as
// an opaque JSON blob.
package storage

import (
	"context"

	"github.com/scrypster/navigator/pkg/types"
)

// BriefingCache stores complete briefing records keyed by CacheKey.
type BriefingCache interface {
	// Get returns the cached briefing.
	// Returns ErrNotFound if nothing is cached under key.
	Get(ctx context.Context, key string) (*types.BriefingRecord, error)

	// Put stores a briefing, replacing any previous one (upsert semantics).
	// Returns ErrInvalidInput for a nil record or an invalid key.
	Put(ctx context.Context, key string, record *types.BriefingRecord) error

	// Delete removes a cached briefing.
	// Returns ErrNotFound if nothing is cached under key.
	Delete(ctx context.Context, key string) error

	// List returns every cached entry, most recently updated first.
	List(ctx context.Context) ([]Entry, error)

	// Close releases backend resources.
	Close() error
}
