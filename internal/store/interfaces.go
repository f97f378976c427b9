package store

//go:generate mockgen -source=interfaces.go -destination=../mock/kv_mock.go -package=mock

// KV is the local persistence interface consumed by the sync layer: a
// synchronous string key/value store, mirroring the browser localStorage
// contract the data model was designed around. All structured data is
// JSON-encoded before storage.
type KV interface {
	// GetItem returns the value stored under key. The second result is
	// false when the key is absent.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes the value stored under key. Removing an absent
	// key is not an error.
	RemoveItem(key string) error
}
