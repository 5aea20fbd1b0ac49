package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scrypster/navigator/internal/config"
	"github.com/scrypster/navigator/internal/sources"
	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/internal/storage/filecache"
	"github.com/scrypster/navigator/internal/storage/postgres"
	"github.com/scrypster/navigator/internal/storage/sqlite"
)

// sqliteFileName is used when the sqlite cache path names a directory.
const sqliteFileName = "briefings.db"

// openCache builds the configured briefing cache. Backend "none" returns
// (nil, nil) and the pipeline runs uncached.
func openCache(ctx context.Context, cfg config.CacheConfig) (storage.BriefingCache, error) {
	switch cfg.Backend {
	case "none":
		return nil, nil
	case "", "file":
		return filecache.New(cfg.Path)
	case "sqlite":
		path := sqlitePath(cfg.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		return sqlite.NewBriefingStore(path)
	case "postgres":
		return postgres.NewBriefingStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: cache backend %q", storage.ErrInvalidInput, cfg.Backend)
	}
}

func sqlitePath(p string) string {
	if filepath.Ext(p) == "" {
		return filepath.Join(p, sqliteFileName)
	}
	return p
}

// researcherFor prefers the company context captured in the fixture and
// falls back to the static demo profile.
func researcherFor(f *sources.Fixture) sources.CompanyResearcher {
	if len(f.CompanyContext) > 0 {
		return f
	}
	return sources.StaticResearcher{}
}
