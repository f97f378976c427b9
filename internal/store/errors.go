package store

import "errors"

var (
	// ErrSessionNotFound is returned when no persisted session token exists
	// in the local store.
	ErrSessionNotFound = errors.New("local session not found")
)
