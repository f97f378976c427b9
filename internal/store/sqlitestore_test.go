package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/sayright/internal/logger"
)

func newTestSQLiteKV(t *testing.T) KV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "local.db"), logger.Nop())
	require.NoError(t, err)
	return kv
}

func TestSQLiteKV_SetGet(t *testing.T) {
	kv := newTestSQLiteKV(t)

	require.NoError(t, kv.SetItem("favorites", `[{"id":"1","text":"Hello"}]`))

	v, ok, err := kv.GetItem("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1","text":"Hello"}]`, v)
}

func TestSQLiteKV_GetMissing(t *testing.T) {
	kv := newTestSQLiteKV(t)

	_, ok, err := kv.GetItem("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_UpsertOverwrites(t *testing.T) {
	kv := newTestSQLiteKV(t)

	require.NoError(t, kv.SetItem("k", "v1"))
	require.NoError(t, kv.SetItem("k", "v2"))

	v, ok, err := kv.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestSQLiteKV_Remove(t *testing.T) {
	kv := newTestSQLiteKV(t)

	require.NoError(t, kv.SetItem("k", "v"))
	require.NoError(t, kv.RemoveItem("k"))

	_, ok, err := kv.GetItem("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// removing again is a no-op
	require.NoError(t, kv.RemoveItem("k"))
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")

	kv, err := NewSQLiteKV(path, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, kv.SetItem("tags", `[{"id":"t1"}]`))

	reopened, err := NewSQLiteKV(path, logger.Nop())
	require.NoError(t, err)

	v, ok, err := reopened.GetItem("tags")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"t1"}]`, v)
}
