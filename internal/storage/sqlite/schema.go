// Package sqlite provides a SQLite implementation of storage.BriefingCache
// on the pure-Go modernc.org/sqlite driver.
package sqlite

// Schema creates the briefing cache table.
const Schema = `
CREATE TABLE IF NOT EXISTS briefings (
    cache_key TEXT PRIMARY KEY,
    person_name TEXT NOT NULL DEFAULT '',
    person_type TEXT NOT NULL DEFAULT '',
    payload TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_briefings_updated_at ON briefings(updated_at);
`
