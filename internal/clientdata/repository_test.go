package clientdata

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

type cachedSummary struct {
	TotalValue float64 `msgpack:"total_value"`
	Positions  int     `msgpack:"positions"`
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	stored := cachedSummary{TotalValue: 12500.50, Positions: 7}
	require.NoError(t, repo.Store("dashboard", "summary", stored, time.Minute))

	var got cachedSummary
	found, err := repo.GetIfFresh("dashboard", "summary", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stored, got)
}

func TestGetIfFresh_MissingKey(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	var got cachedSummary
	found, err := repo.GetIfFresh("dashboard", "nope", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetIfFresh_ExpiredEntry(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("journal", "list", cachedSummary{Positions: 1}, -time.Minute))

	var got cachedSummary
	found, err := repo.GetIfFresh("journal", "list", &got)
	require.NoError(t, err)
	assert.False(t, found, "expired entries are cache misses")

	// Stale fallback still sees it
	found, err = repo.Get("journal", "list", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got.Positions)
}

func TestStore_Upsert(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("screener", "momentum", cachedSummary{Positions: 1}, time.Minute))
	require.NoError(t, repo.Store("screener", "momentum", cachedSummary{Positions: 2}, time.Minute))

	var got cachedSummary
	found, err := repo.GetIfFresh("screener", "momentum", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, got.Positions)
}

func TestDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("journal", "list", cachedSummary{}, time.Minute))
	require.NoError(t, repo.Delete("journal", "list"))

	var got cachedSummary
	found, err := repo.Get("journal", "list", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteAllExpired(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("dashboard", "stale", cachedSummary{}, -time.Hour))
	require.NoError(t, repo.Store("dashboard", "fresh", cachedSummary{}, time.Hour))
	require.NoError(t, repo.Store("screener", "stale", cachedSummary{}, -time.Hour))

	results, err := repo.DeleteAllExpired()
	require.NoError(t, err)

	assert.Equal(t, int64(1), results["dashboard"])
	assert.Equal(t, int64(1), results["screener"])
	assert.Equal(t, int64(0), results["journal"])

	var got cachedSummary
	found, err := repo.Get("dashboard", "fresh", &got)
	require.NoError(t, err)
	assert.True(t, found, "fresh entries survive cleanup")
}

func TestValidateTable(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	err := repo.Store("positions; DROP TABLE dashboard", "k", cachedSummary{}, time.Minute)
	assert.Error(t, err)

	var got cachedSummary
	_, err = repo.Get("unknown_table", "k", &got)
	assert.Error(t, err)
}

func TestCleanupJob(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	require.NoError(t, repo.Store("journal", "stale", cachedSummary{}, -time.Minute))

	job := NewCleanupJob(repo, zerolog.New(nil).Level(zerolog.Disabled))
	assert.Equal(t, "cache_cleanup", job.Name())
	require.NoError(t, job.Run())

	var got cachedSummary
	found, err := repo.Get("journal", "stale", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
