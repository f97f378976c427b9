package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

// NewConnectSQLite opens the SQLite database file at path, creating it if
// absent. SQLite is the zero-setup backend for a local dev run; the schema
// is identical to the PostgreSQL one apart from the jsonb merge, which is
// done in application code here.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

// sqliteUserRepository is the SQLite-backed implementation of
// [UserRepository].
type sqliteUserRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSQLiteUserRepository constructs a [UserRepository] over a SQLite
// connection.
func NewSQLiteUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating sqlite user repository")
	return &sqliteUserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sqliteUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	const insert = `INSERT INTO users (uid, login, password_hash, name) VALUES (?, ?, ?, ?);`
	if _, err := r.db.ExecContext(ctx, insert, user.UID, user.Login, user.Password, user.Name); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, ErrLoginAlreadyExists
		}

		log.Err(err).Str("func", "*sqliteUserRepository.CreateUser").Msg("error: insert failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.FindUserByLogin(ctx, user.Login)
}

func (r *sqliteUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	const query = `SELECT uid, login, password_hash, name, created_at FROM users WHERE login = ?;`
	row := r.db.QueryRowContext(ctx, query, login)

	var found models.User
	if err := row.Scan(&found.UID, &found.Login, &found.Password, &found.Name, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*sqliteUserRepository.FindUserByLogin").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// sqliteDocumentRepository is the SQLite-backed implementation of
// [DocumentRepository]. SQLite's json_patch() does a deep merge, which is
// not the contract, so the shallow merge is a read-modify-write inside a
// transaction instead.
type sqliteDocumentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSQLiteDocumentRepository constructs a [DocumentRepository] over a
// SQLite connection.
func NewSQLiteDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating sqlite document repository")
	return &sqliteDocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sqliteDocumentRepository) GetDocument(ctx context.Context, collection, docID string) (models.Document, error) {
	return getSQLiteDocument(ctx, r.db.DB, collection, docID)
}

func (r *sqliteDocumentRepository) MergeDocument(ctx context.Context, collection, docID string, fields map[string]json.RawMessage) (models.Document, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Document{}, fmt.Errorf("begin merge transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getSQLiteDocument(ctx, tx, collection, docID)
	switch {
	case errors.Is(err, ErrDocumentNotFound):
		current = models.Document{
			Collection: collection,
			DocID:      docID,
			Fields:     map[string]json.RawMessage{},
		}
	case err != nil:
		return models.Document{}, err
	}

	for name, value := range fields {
		current.Fields[name] = value
	}
	current.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(current.Fields)
	if err != nil {
		return models.Document{}, fmt.Errorf("encode fields: %w", err)
	}

	const upsert = `INSERT INTO documents (collection, doc_id, fields, updated_at) VALUES (?, ?, ?, ?)
    ON CONFLICT (collection, doc_id) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at;`
	if _, err = tx.ExecContext(ctx, upsert, collection, docID, payload, current.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*sqliteDocumentRepository.MergeDocument").Msg("error: upsert failed")
		return models.Document{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.Document{}, fmt.Errorf("commit merge transaction: %w", err)
	}

	return current, nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getSQLiteDocument(ctx context.Context, q queryRower, collection, docID string) (models.Document, error) {
	const query = `SELECT collection, doc_id, fields, updated_at FROM documents WHERE collection = ? AND doc_id = ?;`

	doc, err := scanDocument(q.QueryRowContext(ctx, query, collection, docID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		return models.Document{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc, nil
}
