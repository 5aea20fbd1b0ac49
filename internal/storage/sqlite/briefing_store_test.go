package sqlite

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/pkg/types"
)

func newTestStore(t *testing.T) *BriefingStore {
	t.Helper()
	store, err := NewBriefingStore(filepath.Join(t.TempDir(), "briefings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func record(name string) *types.BriefingRecord {
	return &types.BriefingRecord{
		Person: types.Person{Name: name, Role: "Staff Engineer"},
		Themes: types.ThemeProfile{Primary: "infrastructure", Secondary: []string{"latency"}},
		Synthesis: types.Synthesis{
			PersonType:    types.PersonEngineer,
			TalkingPoints: []types.TalkingPoint{{Point: "Discuss approach to infrastructure"}},
		},
	}
}

func TestBriefingStore_PutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "profile_jane.json", record("Jane")))

	got, err := store.Get(ctx, "profile_jane.json")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Person.Name)
	assert.Equal(t, types.PersonEngineer, got.PersonType)
	assert.Equal(t, []string{"latency"}, got.Themes.Secondary)
	require.Len(t, got.TalkingPoints, 1)
}

func TestBriefingStore_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "profile_jane.json", record("Jane")))
	require.NoError(t, store.Put(ctx, "profile_jane.json", record("Jane Updated")))

	got, err := store.Get(ctx, "profile_jane.json")
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", got.Person.Name)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "profile_jane.json", entries[0].Key)
	assert.Positive(t, entries[0].Size)
}

func TestBriefingStore_NotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "profile_missing.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "profile_missing.json"), storage.ErrNotFound)
}

func TestBriefingStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "profile_jane.json", record("Jane")))
	require.NoError(t, store.Delete(ctx, "profile_jane.json"))

	_, err := store.Get(ctx, "profile_jane.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBriefingStore_InvalidInput(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "profile_jane.json", nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, "bad key", record("x")), storage.ErrInvalidInput)
}

func TestDBPathFromDSN(t *testing.T) {
	assert.Equal(t, "", dbPathFromDSN(":memory:"))
	assert.Equal(t, "/tmp/x.db", dbPathFromDSN("/tmp/x.db"))
	assert.Equal(t, "/tmp/x.db", dbPathFromDSN("file:/tmp/x.db?mode=rwc"))
	assert.Equal(t, "", dbPathFromDSN("file::memory:?cache=shared"))
	assert.Equal(t, "/tmp/my briefings.db", dbPathFromDSN("file:/tmp/my%20briefings.db"))
	assert.Equal(t, "", dbPathFromDSN(""))
}

func TestOrphanedSidecars(t *testing.T) {
	assert.Empty(t, orphanedSidecars(""))

	dbPath := filepath.Join(t.TempDir(), "briefings.db")
	assert.Empty(t, orphanedSidecars(dbPath), "no sidecars on disk")

	for _, suffix := range []string{"-shm", "-wal"} {
		require.NoError(t, os.WriteFile(dbPath+suffix, nil, 0o600))
	}
	got := orphanedSidecars(dbPath)
	if _, err := exec.LookPath("lsof"); err != nil {
		assert.Empty(t, got, "without lsof nothing is cleared")
		return
	}
	assert.Equal(t, []string{dbPath + "-shm", dbPath + "-wal"}, got)
}

func TestIsRecoverableWALError(t *testing.T) {
	assert.False(t, isRecoverableWALError(nil))
	assert.False(t, isRecoverableWALError(errors.New("no such table")))
	assert.True(t, isRecoverableWALError(errors.New("open: disk I/O error")))
	assert.True(t, isRecoverableWALError(errors.New("database is locked (5)")))
}
