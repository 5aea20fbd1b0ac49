package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/pkg/types"
)

// BriefingStore implements storage.BriefingCache using PostgreSQL.
type BriefingStore struct {
	db *sql.DB
}

// NewBriefingStore connects to dsn and creates the schema.
func NewBriefingStore(ctx context.Context, dsn string) (*BriefingStore, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	store := NewBriefingStoreFromDB(db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewBriefingStoreFromDB wraps an open database without touching the schema.
func NewBriefingStoreFromDB(db *sql.DB) *BriefingStore {
	return &BriefingStore{db: db}
}

// Migrate creates the briefings table if it does not exist.
func (s *BriefingStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// Get returns the briefing cached under key.
func (s *BriefingStore) Get(ctx context.Context, key string) (*types.BriefingRecord, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM briefings WHERE cache_key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to get %s: %w", key, err)
	}

	var record types.BriefingRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("postgres: corrupt entry %s: %w", key, err)
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
		return fmt.Errorf("postgres: failed to encode %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO briefings (cache_key, person_name, person_type, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (cache_key) DO UPDATE SET
			person_name = EXCLUDED.person_name,
			person_type = EXCLUDED.person_type,
			payload = EXCLUDED.payload,
			updated_at = NOW()`,
		key, record.Person.Name, string(record.PersonType), payload)
	if err != nil {
		return fmt.Errorf("postgres: failed to put %s: %w", key, describe(err))
	}
	return nil
}

// Delete removes the briefing cached under key.
func (s *BriefingStore) Delete(ctx context.Context, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM briefings WHERE cache_key = $1`, key)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete %s: %w", key, describe(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: failed to delete %s: %w", key, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List returns every cached entry, most recently updated first.
func (s *BriefingStore) List(ctx context.Context) ([]storage.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cache_key, updated_at, OCTET_LENGTH(payload::text)
		FROM briefings
		ORDER BY updated_at DESC, cache_key`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list briefings: %w", describe(err))
	}
	defer func() { _ = rows.Close() }()

	entries := []storage.Entry{}
	for rows.Next() {
		var e storage.Entry
		if err := rows.Scan(&e.Key, &e.UpdatedAt, &e.Size); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (s *BriefingStore) Close() error {
	return s.db.Close()
}

// describe adds the server's error code to pq errors.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w (code %s)", err, pqErr.Code)
	}
	return err
}

var _ storage.BriefingCache = (*BriefingStore)(nil)
