// Package postgres provides a PostgreSQL implementation of
// storage.BriefingCache using lib/pq.
package postgres

// Schema creates the briefing cache table. Payloads are JSONB so cached
// briefings can be queried in place.
const Schema = `
CREATE TABLE IF NOT EXISTS briefings (
    cache_key TEXT PRIMARY KEY,
    person_name TEXT NOT NULL DEFAULT '',
    person_type TEXT NOT NULL DEFAULT '',
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_briefings_updated_at ON briefings(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_briefings_person_type ON briefings(person_type);
`
