package models

// Tag is a user-defined label that groups favorites. Tags live in the "tags"
// field of the user document.
type Tag struct {
	// ID uniquely identifies the tag within the user's collection.
	ID string `json:"id"`

	// Name is the display name of the tag.
	Name string `json:"name"`

	// Color is the display color in "#RRGGBB" form.
	Color string `json:"color,omitempty"`
}

// RecordID returns the entity identifier.
func (t Tag) RecordID() string { return t.ID }

// WithRecordID returns a copy of the tag with the given identifier.
func (t Tag) WithRecordID(id string) Tag {
	t.ID = id
	return t
}
