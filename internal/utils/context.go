// Package utils provides helper utilities shared by the transport and
// service layers: type-safe context keys, JSON response writing, JWT
// generation and validation, password hashing, and uid generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UIDCtxKey is the key under which the auth middleware stores the
// authenticated user's uid. Retrieve it with [GetUIDFromContext].
var UIDCtxKey = contextKey("uid")

// GetUIDFromContext retrieves the authenticated uid from the context.
// ok is false when the value is missing or has an unexpected type.
func GetUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UIDCtxKey).(string)
	return uid, ok
}
