package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/pkg/types"
)

func newMockStore(t *testing.T) (*BriefingStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBriefingStoreFromDB(db), mock
}

func TestBriefingStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	payload, err := json.Marshal(types.BriefingRecord{Person: types.Person{Name: "Jane"}})
	require.NoError(t, err)
	mock.ExpectQuery("SELECT payload FROM briefings WHERE cache_key = \\$1").
		WithArgs("profile_jane.json").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := store.Get(context.Background(), "profile_jane.json")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Person.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBriefingStore_GetNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT payload FROM briefings").
		WithArgs("profile_missing.json").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "profile_missing.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBriefingStore_Put(t *testing.T) {
	store, mock := newMockStore(t)
	record := &types.BriefingRecord{
		Person:    types.Person{Name: "Jane"},
		Synthesis: types.Synthesis{PersonType: types.PersonInvestor},
	}

	mock.ExpectExec("INSERT INTO briefings .* ON CONFLICT \\(cache_key\\) DO UPDATE").
		WithArgs("profile_jane.json", "Jane", "investor", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Put(context.Background(), "profile_jane.json", record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBriefingStore_PutWrapsServerError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO briefings").
		WillReturnError(&pq.Error{Code: "42P01", Message: "relation \"briefings\" does not exist"})

	err := store.Put(context.Background(), "profile_jane.json", &types.BriefingRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42P01")
}

func TestBriefingStore_PutInvalid(t *testing.T) {
	store, _ := newMockStore(t)
	assert.ErrorIs(t, store.Put(context.Background(), "profile_jane.json", nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(context.Background(), "jane", &types.BriefingRecord{}), storage.ErrInvalidInput)
}

func TestBriefingStore_Delete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM briefings WHERE cache_key = \\$1").
		WithArgs("profile_jane.json").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM briefings WHERE cache_key = \\$1").
		WithArgs("profile_jane.json").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "profile_jane.json"))
	assert.ErrorIs(t, store.Delete(context.Background(), "profile_jane.json"), storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBriefingStore_List(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Unix(1_700_000_000, 0).UTC()

	mock.ExpectQuery("SELECT cache_key, updated_at, OCTET_LENGTH").
		WillReturnRows(sqlmock.NewRows([]string{"cache_key", "updated_at", "size"}).
			AddRow("profile_b.json", now, int64(120)).
			AddRow("profile_a.json", now.Add(-time.Hour), int64(80)))

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "profile_b.json", entries[0].Key)
	assert.Equal(t, int64(80), entries[1].Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBriefingStore_Migrate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS briefings").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
