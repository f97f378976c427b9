package models

// Favorite is a practice sentence saved by the user. Favorites live in the
// "favorites" field of the user document and are mirrored into local storage
// under the same collection key.
type Favorite struct {
	// ID uniquely identifies the favorite within the user's collection.
	ID string `json:"id"`

	// Text is the sentence the user practices.
	Text string `json:"text"`

	// TagIDs references tags attached to this favorite.
	TagIDs []string `json:"tagIds,omitempty"`

	// CreatedAt is a unix-millisecond timestamp set when the favorite is
	// first added.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// RecordID returns the entity identifier.
func (f Favorite) RecordID() string { return f.ID }

// WithRecordID returns a copy of the favorite with the given identifier.
func (f Favorite) WithRecordID(id string) Favorite {
	f.ID = id
	return f
}
