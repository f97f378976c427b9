// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/server/docstore"
	"github.com/mkravets/sayright/internal/service"
	"github.com/mkravets/sayright/internal/utils"
	"github.com/mkravets/sayright/models"
)

// snapshotResponse is the wire form of a document snapshot, shared by the
// GET endpoint and the websocket watch feed.
type snapshotResponse struct {
	Exists    bool                       `json:"exists"`
	Fields    map[string]json.RawMessage `json:"fields,omitempty"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

func snapshotOf(doc models.Document) snapshotResponse {
	return snapshotResponse{
		Exists:    true,
		Fields:    doc.Fields,
		UpdatedAt: doc.UpdatedAt,
	}
}

// requireOwnedDocument resolves the {collection}/{docID} route parameters
// and enforces that the authenticated user only touches their own document:
// within the users collection the docID is the uid.
func requireOwnedDocument(w http.ResponseWriter, r *http.Request) (collection, docID string, ok bool) {
	log := logger.FromRequest(r)

	collection = chi.URLParam(r, "collection")
	docID = chi.URLParam(r, "docID")

	uid, found := utils.GetUIDFromContext(r.Context())
	if !found {
		log.Error().Msg("no uid in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", "", false
	}

	if collection != models.UsersCollection || docID != uid {
		log.Warn().
			Str("uid", uid).
			Str("collection", collection).
			Str("docID", docID).
			Msg("access to foreign document denied")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return "", "", false
	}

	return collection, docID, true
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	collection, docID, ok := requireOwnedDocument(w, r)
	if !ok {
		return
	}

	doc, err := h.services.DocumentService.GetDocument(ctx, collection, docID)
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during document read")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, snapshotOf(doc), http.StatusOK)
}

func (h *Handler) mergeDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	collection, docID, ok := requireOwnedDocument(w, r)
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc, err := h.services.DocumentService.MergeDocument(ctx, collection, docID, fields)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during document merge")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, snapshotOf(doc), http.StatusOK)
}
