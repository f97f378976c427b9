package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"encoding/json"

	"github.com/mkravets/sayright/models"
)

// AuthService owns account registration, credential verification, and the
// session token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DocumentService owns document reads and merge-writes, and fans merged
// snapshots out to watchers.
type DocumentService interface {
	GetDocument(ctx context.Context, collection, docID string) (models.Document, error)
	MergeDocument(ctx context.Context, collection, docID string, fields map[string]json.RawMessage) (models.Document, error)

	// WatchDocument registers a watcher for the given document. Every merge
	// that lands after registration is delivered as a full post-merge
	// snapshot. The returned function detaches the watcher; it is safe to
	// call more than once.
	WatchDocument(collection, docID string) (<-chan models.Document, func())
}
