// Package docstore is the devserver's persistence layer: user accounts and
// per-user documents with shallow merge-write semantics. Two backends are
// provided, PostgreSQL for a shared dev environment and SQLite for a
// zero-setup local run.
package docstore

//go:generate mockgen -source=docstore.go -destination=../../mock/docstore_mock.go -package=mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/migrations"
	"github.com/mkravets/sayright/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns [ErrLoginAlreadyExists] on a login clash.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin returns the account with the given login, or
	// [ErrNoUserWasFound].
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// DocumentRepository persists documents keyed by (collection, docID).
type DocumentRepository interface {
	// GetDocument returns the stored document, or [ErrDocumentNotFound].
	GetDocument(ctx context.Context, collection, docID string) (models.Document, error)

	// MergeDocument shallow-merges fields into the document, creating it if
	// absent, and returns the document after the merge.
	MergeDocument(ctx context.Context, collection, docID string, fields map[string]json.RawMessage) (models.Document, error)
}

// Repositories bundles the backends behind one handle.
type Repositories struct {
	Users     UserRepository
	Documents DocumentRepository
}

// NewRepositories opens the configured backend and returns repositories
// over it. A "postgres://" DSN selects PostgreSQL; any other value is
// treated as a SQLite file path.
func NewRepositories(ctx context.Context, cfg config.DB, log *logger.Logger) (*Repositories, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		db, err := NewConnectPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err = db.Migrate("pgx"); err != nil {
			return nil, err
		}
		return &Repositories{
			Users:     NewUserRepository(db, log),
			Documents: NewDocumentRepository(db, log),
		}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	if err = db.Migrate("sqlite3"); err != nil {
		return nil, err
	}
	return &Repositories{
		Users:     NewSQLiteUserRepository(db, log),
		Documents: NewSQLiteDocumentRepository(db, log),
	}, nil
}

// Migrate brings the schema up to date for the given goose dialect.
func (db *DB) Migrate(dialect string) error {
	return migrations.Migrate(db.DB, dialect)
}
