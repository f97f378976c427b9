// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. Documents live in a single "documents" table keyed
// by (collection, doc_id); the fields column is a jsonb object, so the
// merge-write is a single upsert with a jsonb concatenation in the
// ON CONFLICT branch. The `||` operator replaces top-level keys and keeps
// the rest, which is exactly the shallow merge contract.
type documentRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetDocument returns the stored document, or [ErrDocumentNotFound].
func (r *documentRepository) GetDocument(ctx context.Context, collection, docID string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("collection", "doc_id", "fields", "updated_at").
		From("documents").
		Where(sq.Eq{"collection": collection, "doc_id": docID}).
		ToSql()
	if err != nil {
		return models.Document{}, fmt.Errorf("build select query: %w", err)
	}

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}

		log.Err(err).Str("func", "*documentRepository.GetDocument").Msg("error: scanning error")
		return models.Document{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc, nil
}

// MergeDocument shallow-merges fields into the document, creating it if
// absent, and returns the row after the merge. Transient failures
// (connection loss, serialization rollback) are retried once.
func (r *documentRepository) MergeDocument(ctx context.Context, collection, docID string, fields map[string]json.RawMessage) (models.Document, error) {
	log := logger.FromContext(ctx)

	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return models.Document{}, fmt.Errorf("encode fields: %w", err)
	}

	query, args, err := r.builder.
		Insert("documents").
		Columns("collection", "doc_id", "fields", "updated_at").
		Values(collection, docID, payload, time.Now().UTC()).
		Suffix(`ON CONFLICT (collection, doc_id) DO UPDATE
    SET fields = documents.fields || EXCLUDED.fields, updated_at = EXCLUDED.updated_at
    RETURNING collection, doc_id, fields, updated_at`).
		ToSql()
	if err != nil {
		return models.Document{}, fmt.Errorf("build merge query: %w", err)
	}

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
		log.Warn().Err(err).Str("func", "*documentRepository.MergeDocument").Msg("retrying merge after transient DB error")
		doc, err = scanDocument(r.db.QueryRowContext(ctx, query, args...))
	}
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.MergeDocument").Msg("error: merge failed")
		return models.Document{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc, nil
}

// scanDocument decodes one documents row. The fields column arrives as raw
// jsonb bytes and is unpacked into the per-field map.
func scanDocument(row *sql.Row) (models.Document, error) {
	var (
		doc models.Document
		raw []byte
	)
	if err := row.Scan(&doc.Collection, &doc.DocID, &raw, &doc.UpdatedAt); err != nil {
		return models.Document{}, err
	}

	if err := json.Unmarshal(raw, &doc.Fields); err != nil {
		return models.Document{}, fmt.Errorf("decode fields column: %w", err)
	}

	return doc, nil
}
