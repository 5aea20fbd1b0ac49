// Package filecache stores each briefing as a JSON file named by its cache
// key inside one directory.
package filecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/pkg/types"
)

// Cache is a directory of briefing JSON files.
type Cache struct {
	dir string
}

// New creates the directory if needed and returns a cache rooted there.
func New(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: cache directory is required", storage.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filecache: failed to create %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Get reads and decodes the briefing stored under key.
func (c *Cache) Get(ctx context.Context, key string) (*types.BriefingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("filecache: failed to read %s: %w", key, err)
	}

	var record types.BriefingRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("filecache: corrupt entry %s: %w", key, err)
	}
	return &record, nil
}

// Put writes the briefing to a temp file and renames it into place, so a
// reader never sees a partial file.
func (c *Cache) Put(ctx context.Context, key string, record *types.BriefingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil {
		return storage.ErrInvalidInput
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("filecache: failed to encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("filecache: failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filecache: failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filecache: failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		return fmt.Errorf("filecache: failed to commit %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotFound
	}
	return err
}

// List returns the cached entries, newest first.
func (c *Cache) List(ctx context.Context) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("filecache: failed to list %s: %w", c.dir, err)
	}

	entries := []storage.Entry{}
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".json") || storage.ValidateKey(name) != nil {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, storage.Entry{Key: name, UpdatedAt: info.ModTime(), Size: info.Size()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

// Close is a no-op.
func (c *Cache) Close() error {
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key)
}

var _ storage.BriefingCache = (*Cache)(nil)
