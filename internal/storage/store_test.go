package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(dbPath, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	value, ok, err := store.Get("search")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", value)
}

func TestStore_SetAndGet(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Set("search", "react"))
	value, ok, err := store.Get("search")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "react", value)

	require.NoError(t, store.Set("search", "redux"))
	value, _, err = store.Get("search")
	require.NoError(t, err)
	assert.Equal(t, "redux", value)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := NewStore(dbPath, time.Second)
	require.NoError(t, err)
	require.NoError(t, store.Set("search", "graphql"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dbPath, time.Second)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("search")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "graphql", value)
}

func TestNewStore_InvalidPath(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing", "dir", "x.db"), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening database")
}
