package syncer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Normalize returns a copy of items where every element carries a non-empty
// identifier that is unique within the result. Elements with valid, unseen
// ids pass through unchanged; elements with an empty or duplicate id get a
// freshly generated one. The second return reports whether any element was
// repaired, which callers use to decide on a corrective remote write.
//
// Normalize is pure and idempotent: running it on its own output changes
// nothing.
func Normalize[T Record[T]](items []T) ([]T, bool) {
	result := make([]T, len(items))
	used := make(map[string]struct{}, len(items))
	changed := false

	for i, item := range items {
		id := item.RecordID()
		if _, dup := used[id]; id == "" || dup {
			id = newRecordID(used)
			item = item.WithRecordID(id)
			changed = true
		}
		used[id] = struct{}{}
		result[i] = item
	}

	return result, changed
}

// NewRecordID generates a fresh record identifier using the same scheme the
// normalizer uses for repairs. Callers that want to know an item's id before
// handing it to a collection assign it up front; Normalize passes valid ids
// through untouched.
func NewRecordID() string {
	return newRecordID(nil)
}

// newRecordID generates an identifier outside the used set. UUIDv7 carries a
// time-ordered prefix plus a random tail; on the off chance of a collision
// (or a failed system entropy read) it falls back to a timestamp-and-random
// composite and re-rolls until unused.
func newRecordID(used map[string]struct{}) string {
	for {
		var id string
		if u, err := uuid.NewV7(); err == nil {
			id = u.String()
		} else {
			id = fmt.Sprintf("%d-%04x", time.Now().UnixNano(), rand.IntN(0x10000))
		}
		if _, dup := used[id]; !dup {
			return id
		}
	}
}
