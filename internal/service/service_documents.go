// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/server/docstore"
	"github.com/mkravets/sayright/models"
)

// documentService is the concrete implementation of [DocumentService]. It
// delegates persistence to a [docstore.DocumentRepository] and publishes
// every post-merge snapshot to the watch hub, so that a client watching a
// document observes its own writes and everyone else's in merge order.
type documentService struct {
	documentRepository docstore.DocumentRepository
	hub                *Hub
	logger             *logger.Logger
}

// NewDocumentService constructs a [DocumentService] over the given
// repository.
func NewDocumentService(documentRepository docstore.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		hub:                NewHub(logger),
		logger:             logger,
	}
}

// GetDocument returns the stored document. [docstore.ErrDocumentNotFound]
// passes through unwrapped so the handler can map it to a 404.
func (d *documentService) GetDocument(ctx context.Context, collection, docID string) (models.Document, error) {
	doc, err := d.documentRepository.GetDocument(ctx, collection, docID)
	if err != nil {
		return models.Document{}, err
	}

	return doc, nil
}

// MergeDocument shallow-merges fields into the document and broadcasts the
// resulting snapshot to all watchers of that document.
func (d *documentService) MergeDocument(ctx context.Context, collection, docID string, fields map[string]json.RawMessage) (models.Document, error) {
	log := logger.FromContext(ctx)

	if len(fields) == 0 {
		return models.Document{}, fmt.Errorf("%w: empty merge payload", ErrInvalidDataProvided)
	}

	doc, err := d.documentRepository.MergeDocument(ctx, collection, docID, fields)
	if err != nil {
		log.Err(err).Str("collection", collection).Str("docID", docID).Msg("document merge failed")
		return models.Document{}, err
	}

	d.hub.Publish(doc)

	return doc, nil
}

// WatchDocument registers a watcher on the hub.
func (d *documentService) WatchDocument(collection, docID string) (<-chan models.Document, func()) {
	return d.hub.Subscribe(collection, docID)
}
