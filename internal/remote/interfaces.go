// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

// Package remote provides the client-side abstraction over the remote
// document store that holds one document per user.
//
// The primary abstraction is [DocumentStore], which decouples the sync layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// with a websocket push feed ([NewHTTPDocumentStore]).
//
// Errors returned by implementations carry a [Code] (see errors.go) so that
// the retry executor can classify them as retryable or terminal without
// depending on transport details.
package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mkravets/sayright/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

// DocumentRef addresses a single document in the remote store.
type DocumentRef struct {
	// Collection is the collection path, e.g. "users".
	Collection string
	// DocID is the document identifier within the collection; for user
	// documents this is the uid.
	DocID string
}

// Snapshot is a point-in-time read of a remote document. When Exists is
// false the document has not been created yet and Fields is nil.
type Snapshot struct {
	Exists    bool                       `json:"exists"`
	Fields    map[string]json.RawMessage `json:"fields,omitempty"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// Field decodes the named top-level field of the snapshot into dst.
// It reports false when the field is absent or cannot be decoded into dst;
// dst is left untouched in that case. Callers use this as the defensive
// decode step for untyped document payloads.
func (s Snapshot) Field(name string, dst any) bool {
	raw, ok := s.Fields[name]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// DocumentStore defines transport-agnostic access to the remote document
// store. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to coded [Error]
// values.
type DocumentStore interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	// It should be called after a successful login and with an empty string
	// on logout.
	SetToken(token string)

	// Get fetches the current snapshot of the referenced document. A
	// missing document is not an error: the returned snapshot has
	// Exists == false.
	Get(ctx context.Context, ref DocumentRef) (Snapshot, error)

	// SetMerge shallow-merges the given top-level fields into the
	// referenced document, creating the document if it does not exist.
	// Fields not named in the argument keep their current values.
	SetMerge(ctx context.Context, ref DocumentRef, fields map[string]json.RawMessage) error

	// Watch attaches a live listener to the referenced document. The
	// callback receives an immediate snapshot on subscribe and another on
	// every subsequent remote change; callbacks are delivered sequentially.
	// The returned function detaches the listener; it is safe to call more
	// than once.
	Watch(ctx context.Context, ref DocumentRef, fn func(Snapshot)) (func(), error)
}

// Authenticator handles account creation and login against the sync server.
// Both calls store the issued bearer token on success so that subsequent
// document requests are authenticated.
type Authenticator interface {
	Register(ctx context.Context, user models.User) (models.Token, error)
	Login(ctx context.Context, user models.User) (models.Token, error)
}

// Client is the full remote surface: document access plus account auth.
type Client interface {
	DocumentStore
	Authenticator
}

// Connection owns the process-wide network-enabled state for remote access.
// It replaces what would otherwise be a global flag: constructed once and
// passed by reference to every component that talks to the store.
type Connection interface {
	// EnsureNetworkEnabled verifies that the remote endpoint is reachable.
	// The check runs once; subsequent calls return immediately after the
	// first success. A failed check returns an offline-coded error and
	// leaves the connection disabled so the next call re-probes.
	EnsureNetworkEnabled(ctx context.Context) error

	// Offline reports whether the last reachability probe failed.
	Offline() bool
}
