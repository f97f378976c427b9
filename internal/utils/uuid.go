package utils

import "github.com/google/uuid"

// NewUID generates a new user identifier. UUIDv7 keeps uids time-sortable;
// when system entropy is unavailable it falls back to a random v4.
func NewUID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
