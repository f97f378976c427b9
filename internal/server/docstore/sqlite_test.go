package docstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

func newTestSQLiteDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sayright.db")
	db, err := NewConnectSQLite(context.Background(), path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate("sqlite3"))

	return db
}

func TestSQLiteUserRepository_RoundTrip(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewSQLiteUserRepository(db, logger.Nop())
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, models.User{
		UID:      "u1",
		Login:    "john",
		Password: "$2a$10$hash",
		Name:     "John",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.UID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindUserByLogin(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, created.UID, found.UID)
	assert.Equal(t, "$2a$10$hash", found.Password)
}

func TestSQLiteUserRepository_DuplicateLogin(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewSQLiteUserRepository(db, logger.Nop())
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, models.User{UID: "u1", Login: "john", Password: "h"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, models.User{UID: "u2", Login: "john", Password: "h"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestSQLiteUserRepository_NotFound(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewSQLiteUserRepository(db, logger.Nop())

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLiteDocumentRepository_GetMissing(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewSQLiteDocumentRepository(db, logger.Nop())

	_, err := repo.GetDocument(context.Background(), models.UsersCollection, "ghost")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestSQLiteDocumentRepository_MergeCreatesAndShallowMerges(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewSQLiteDocumentRepository(db, logger.Nop())
	ctx := context.Background()

	// первая запись создаёт документ
	doc, err := repo.MergeDocument(ctx, models.UsersCollection, "u1", map[string]json.RawMessage{
		models.FavoritesField: json.RawMessage(`[{"id":"f1","word":"water"}]`),
		models.TagsField:      json.RawMessage(`[]`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(doc.Fields[models.TagsField]))

	// merge replaces only the named top-level fields and keeps the rest
	doc, err = repo.MergeDocument(ctx, models.UsersCollection, "u1", map[string]json.RawMessage{
		models.TagsField: json.RawMessage(`[{"id":"t1","name":"hard"}]`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f1","word":"water"}]`, string(doc.Fields[models.FavoritesField]))
	assert.JSONEq(t, `[{"id":"t1","name":"hard"}]`, string(doc.Fields[models.TagsField]))

	stored, err := repo.GetDocument(ctx, models.UsersCollection, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f1","word":"water"}]`, string(stored.Fields[models.FavoritesField]))
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestSQLiteDocumentRepository_ReplacesArrayWholesale(t *testing.T) {
	db := newTestSQLiteDB(t)
	repo := NewSQLiteDocumentRepository(db, logger.Nop())
	ctx := context.Background()

	_, err := repo.MergeDocument(ctx, models.UsersCollection, "u1", map[string]json.RawMessage{
		models.FavoritesField: json.RawMessage(`[{"id":"f1"},{"id":"f2"}]`),
	})
	require.NoError(t, err)

	// a field write is last-write-wins for the whole array, not an element merge
	doc, err := repo.MergeDocument(ctx, models.UsersCollection, "u1", map[string]json.RawMessage{
		models.FavoritesField: json.RawMessage(`[{"id":"f3"}]`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f3"}]`, string(doc.Fields[models.FavoritesField]))
}
