package syncer

import (
	"context"
	"sync"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/remote"
	"github.com/mkravets/sayright/internal/store"
)

// Collection is the consumer-facing binding over an [Engine]. It tracks the
// current identity and rebuilds the engine on login and logout: anonymous
// sessions read and write the local mirror only, authenticated sessions
// refresh from the remote document and attach a live listener. Remote state
// supersedes anonymous local data on login; the two are not merged.
type Collection[T Record[T]] struct {
	field    string
	localKey string
	kv       store.KV
	docs     remote.DocumentStore
	conn     remote.Connection
	retry    *Retryer
	log      *logger.Logger

	mu     sync.Mutex
	engine *Engine[T]
	loaded bool
}

// NewCollection constructs a binding in anonymous mode, seeded from the
// local mirror.
func NewCollection[T Record[T]](field, localKey string, kv store.KV, docs remote.DocumentStore, conn remote.Connection, retry *Retryer, log *logger.Logger) *Collection[T] {
	c := &Collection[T]{
		field:    field,
		localKey: localKey,
		kv:       kv,
		docs:     docs,
		conn:     conn,
		retry:    retry,
		log:      log,
	}
	c.engine = c.newEngine("")
	c.loaded = true

	return c
}

// SetIdentity switches the binding to the given identity. The previous
// engine's listener is torn down first. An empty uid returns to anonymous
// mode backed by the local mirror; a non-empty uid refreshes from the remote
// document and subscribes to its snapshot feed.
func (c *Collection[T]) SetIdentity(ctx context.Context, uid string) error {
	c.mu.Lock()
	prev := c.engine
	c.engine = c.newEngine(uid)
	c.loaded = uid == ""
	engine := c.engine
	c.mu.Unlock()

	prev.Unsubscribe()

	if uid == "" {
		return nil
	}

	if err := engine.Refresh(ctx); err != nil {
		return err
	}
	if err := engine.Subscribe(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()

	return nil
}

// Items returns a copy of the current canonical array.
func (c *Collection[T]) Items() []T {
	return c.currentEngine().Items()
}

// Loaded reports whether the current identity's initial load has completed.
func (c *Collection[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Patch forwards one mutation to the active engine.
func (c *Collection[T]) Patch(ctx context.Context, action Action[T]) error {
	return c.currentEngine().Patch(ctx, action)
}

// Refresh re-fetches the remote document through the active engine. A no-op
// in anonymous mode. Exposed so the binding can be driven by a periodic
// refresh job.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	return c.currentEngine().Refresh(ctx)
}

// Close tears down the active listener. Safe to call repeatedly.
func (c *Collection[T]) Close() {
	c.currentEngine().Unsubscribe()
}

func (c *Collection[T]) currentEngine() *Engine[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine
}

func (c *Collection[T]) newEngine(uid string) *Engine[T] {
	cfg := EngineConfig{UID: uid, Field: c.field, LocalKey: c.localKey}
	return NewEngine[T](cfg, c.kv, c.docs, c.conn, c.retry, c.log)
}
