package service

import (
	"sync"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

// watcherBuffer is the per-watcher channel depth. A watcher that falls this
// far behind starts losing intermediate snapshots; since every snapshot is
// the full document, only the latest one matters anyway.
const watcherBuffer = 8

type watchKey struct {
	collection string
	docID      string
}

// Hub is the in-process fan-out point for document snapshots. Each merged
// document is delivered to every channel subscribed to its
// (collection, docID) pair. When a watcher's buffer is full the oldest
// pending snapshot is dropped in favour of the new one.
type Hub struct {
	mu       sync.Mutex
	watchers map[watchKey]map[chan models.Document]struct{}
	logger   *logger.Logger
}

// NewHub constructs an empty [Hub].
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		watchers: make(map[watchKey]map[chan models.Document]struct{}),
		logger:   log,
	}
}

// Subscribe registers a watcher for the given document and returns its
// delivery channel plus a detach function. The channel is closed on detach;
// the detach function is idempotent.
func (h *Hub) Subscribe(collection, docID string) (<-chan models.Document, func()) {
	key := watchKey{collection: collection, docID: docID}
	ch := make(chan models.Document, watcherBuffer)

	h.mu.Lock()
	set, ok := h.watchers[key]
	if !ok {
		set = make(map[chan models.Document]struct{})
		h.watchers[key] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	detach := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.watchers[key]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.watchers, key)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, detach
}

// Publish delivers the snapshot to every watcher of doc's
// (collection, docID) pair. Slow watchers lose their oldest pending
// snapshot rather than blocking the writer.
func (h *Hub) Publish(doc models.Document) {
	key := watchKey{collection: doc.Collection, docID: doc.DocID}

	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.watchers[key] {
		for {
			select {
			case ch <- doc:
			default:
				// full buffer: evict the oldest snapshot and retry
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}
