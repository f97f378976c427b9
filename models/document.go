package models

import (
	"encoding/json"
	"time"
)

// Field names of the per-user document in the remote document store. Each
// collection field holds a JSON array of entities; UpdatedAtField holds a
// unix-millisecond timestamp of the last client write.
const (
	FavoritesField = "favorites"
	TagsField      = "tags"
	SettingsField  = "settings"
	UpdatedAtField = "updatedAt"
)

// UsersCollection is the collection path under which user documents live,
// one document per uid.
const UsersCollection = "users"

// Document is the server-side representation of one stored document: a flat
// set of named JSON fields plus the time of the last merge-write.
type Document struct {
	Collection string                     `json:"collection"`
	DocID      string                     `json:"docId"`
	Fields     map[string]json.RawMessage `json:"fields"`
	UpdatedAt  time.Time                  `json:"updatedAt"`
}
