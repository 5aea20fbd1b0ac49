package storage

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates that no briefing is cached under the key.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// Entry describes one cached briefing without loading it.
type Entry struct {
	// Key is the canonical cache key (see CacheKey).
	Key string

	// UpdatedAt is when the briefing was last written.
	UpdatedAt time.Time

	// Size is the stored payload size in bytes.
	Size int64
}
