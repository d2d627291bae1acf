package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, Run{
		CreatedAt:  at,
		OutputPath: "/ini/Fallout76Custom.ini",
		DataFolder: "/game/Data",
		Archives:   3,
		Buckets:    map[string]int{"sResourceArchive2List": 2, "sResourceIndexFileList": 1},
	})
	require.NoError(t, err)
	second, err := store.Record(ctx, Run{OutputPath: "/ini/other.ini", DataFolder: "/game/Data"})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "/ini/other.ini", runs[0].OutputPath, "newest first")
	assert.Empty(t, runs[0].Buckets)

	assert.Equal(t, first, runs[1].ID)
	assert.True(t, at.Equal(runs[1].CreatedAt))
	assert.Equal(t, 3, runs[1].Archives)
	assert.Equal(t, 2, runs[1].Buckets["sResourceArchive2List"])
}

func TestStore_RecentLimit(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, Run{OutputPath: "x", DataFolder: "y", Archives: i})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 4, runs[0].Archives)
	assert.Equal(t, 3, runs[1].Archives)
}

func TestStore_ReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Record(ctx, Run{OutputPath: "a", DataFolder: "b"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
