package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scrypster/navigator/internal/logging"
	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/pkg/types"
)

// BriefingStore implements storage.BriefingCache using SQLite.
type BriefingStore struct {
	db *sql.DB
}

// NewBriefingStore opens (or creates) the briefing cache at dsn. A crashed
// writer can leave -shm/-wal sidecars behind that make the first open fail;
// when no process holds them they are cleared and the open is retried once.
func NewBriefingStore(dsn string) (*BriefingStore, error) {
	store, err := openBriefingStore(dsn)
	if err == nil || !isRecoverableWALError(err) {
		return store, err
	}

	log := logging.For("sqlite").With("dsn", dsn)
	sidecars := orphanedSidecars(dbPathFromDSN(dsn))
	if len(sidecars) == 0 {
		return nil, err
	}
	for _, path := range sidecars {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Warn("could not clear briefing cache sidecar", "path", path, "err", rmErr)
		}
	}

	store, retryErr := openBriefingStore(dsn)
	if retryErr != nil {
		return nil, fmt.Errorf("sqlite: briefing cache unusable after clearing %d sidecars: %w (first open: %v)",
			len(sidecars), retryErr, err)
	}
	log.Info("briefing cache reopened after clearing orphaned sidecars", "files", sidecars)
	return store, nil
}

func openBriefingStore(dsn string) (*BriefingStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &BriefingStore{db: db}, nil
}

// Get returns the briefing cached under key.
func (s *BriefingStore) Get(ctx context.Context, key string) (*types.BriefingRecord, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM briefings WHERE cache_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to get %s: %w", key, err)
	}

	var record types.BriefingRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("sqlite: corrupt entry %s: %w", key, err)
	}
	return &record, nil
}

// Put upserts the briefing under key.
func (s *BriefingStore) Put(ctx context.Context, key string, record *types.BriefingRecord) error {
	if record == nil {
		return storage.ErrInvalidInput
	}
	if err := storage.ValidateKey(key); err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode %s: %w", key, err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO briefings (cache_key, person_name, person_type, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			person_name = excluded.person_name,
			person_type = excluded.person_type,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		key, record.Person.Name, string(record.PersonType), string(payload), now, now)
	if err != nil {
		return fmt.Errorf("sqlite: failed to put %s: %w", key, err)
	}
	return nil
}

// Delete removes the briefing cached under key.
func (s *BriefingStore) Delete(ctx context.Context, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM briefings WHERE cache_key = ?`, key)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete %s: %w", key, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List returns every cached entry, most recently updated first.
func (s *BriefingStore) List(ctx context.Context) ([]storage.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cache_key, updated_at, LENGTH(payload)
		FROM briefings
		ORDER BY updated_at DESC, cache_key`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list briefings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []storage.Entry{}
	for rows.Next() {
		var e storage.Entry
		if err := rows.Scan(&e.Key, &e.UpdatedAt, &e.Size); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close checkpoints the WAL and closes the database.
func (s *BriefingStore) Close() error {
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		logging.For("sqlite").Warn("wal checkpoint failed", "err", err)
	}
	return s.db.Close()
}

var _ storage.BriefingCache = (*BriefingStore)(nil)

// dbPathFromDSN returns the database file behind dsn, or "" for in-memory
// databases. Both bare paths and file: URIs are accepted.
func dbPathFromDSN(dsn string) string {
	path, isURI := strings.CutPrefix(dsn, "file:")
	if isURI {
		path, _, _ = strings.Cut(path, "?")
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
	}
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return ""
	}
	return path
}

// isRecoverableWALError matches the open failures left by orphaned sidecars.
func isRecoverableWALError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "disk I/O error") || strings.Contains(msg, "database is locked")
}

// orphanedSidecars lists the -shm/-wal files of dbPath that exist and that no
// process has open. Without lsof nothing is reported, so nothing is removed.
func orphanedSidecars(dbPath string) []string {
	if dbPath == "" {
		return nil
	}
	var found []string
	for _, suffix := range []string{"-shm", "-wal"} {
		if _, err := os.Stat(dbPath + suffix); err == nil {
			found = append(found, dbPath+suffix)
		}
	}
	if len(found) == 0 {
		return nil
	}

	lsof, err := exec.LookPath("lsof")
	if err != nil {
		return nil
	}
	out, err := exec.Command(lsof, append([]string{"-t", dbPath}, found...)...).Output()
	// lsof exits non-zero when none of the files is open.
	if err == nil && strings.TrimSpace(string(out)) != "" {
		return nil
	}
	return found
}
