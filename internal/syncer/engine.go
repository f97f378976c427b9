// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/remote"
	"github.com/mkravets/sayright/internal/store"
	"github.com/mkravets/sayright/models"
)

// EngineConfig binds an [Engine] to one (uid, collection field) pairing.
type EngineConfig struct {
	// UID is the authenticated user id; empty means anonymous mode, in
	// which every mutation applies to the local mirror only.
	UID string
	// Field is the array-valued property inside the user document, e.g.
	// "favorites".
	Field string
	// LocalKey is the local store key mirroring the same array. Defaults
	// to Field.
	LocalKey string
}

// Engine keeps one collection's canonical array in memory, mirrors it into
// the local store, and keeps the remote user document eventually consistent
// with local mutations and with concurrent changes from other devices.
//
// The mutex protects the in-memory state from the watch callback goroutine;
// it is NOT held across remote round-trips, so two concurrent [Engine.Patch]
// calls read the same base array and the later write wins. Callers wanting
// stronger ordering serialize their own calls.
type Engine[T Record[T]] struct {
	cfg   EngineConfig
	kv    store.KV
	docs  remote.DocumentStore
	conn  remote.Connection
	retry *Retryer
	log   *logger.Logger

	mu      sync.Mutex
	current []T
	unsub   func()
}

// NewEngine constructs an engine seeded from the local mirror. A corrupt or
// absent mirror seeds an empty array; sync never fails on local garbage.
func NewEngine[T Record[T]](cfg EngineConfig, kv store.KV, docs remote.DocumentStore, conn remote.Connection, retry *Retryer, log *logger.Logger) *Engine[T] {
	if cfg.LocalKey == "" {
		cfg.LocalKey = cfg.Field
	}

	e := &Engine[T]{
		cfg:   cfg,
		kv:    kv,
		docs:  docs,
		conn:  conn,
		retry: retry,
		log:   fieldLogger(log, cfg.Field),
	}
	e.current = e.loadLocal()

	return e
}

// fieldLogger derives a child logger tagged with the collection field it
// serves, so concurrent engines are distinguishable in the log stream.
func fieldLogger(log *logger.Logger, field string) *logger.Logger {
	l := log.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("component", "syncer").Str("field", field)
	})
	return l
}

// Items returns a copy of the canonical array.
func (e *Engine[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]T, len(e.current))
	copy(items, e.current)
	return items
}

// Refresh force-fetches the user document, normalizes the collection field
// and overwrites the in-memory state and local mirror with the result. If
// normalization repaired anything the corrected array is written back to the
// remote document. No-op in anonymous mode.
func (e *Engine[T]) Refresh(ctx context.Context) error {
	if e.cfg.UID == "" {
		return nil
	}

	if err := e.conn.EnsureNetworkEnabled(ctx); err != nil {
		return err
	}

	snap, err := WithRetry(ctx, e.retry, "refresh "+e.cfg.Field, func(ctx context.Context) (remote.Snapshot, error) {
		return e.docs.Get(ctx, e.ref())
	})
	if err != nil {
		return fmt.Errorf("refresh %s: %w", e.cfg.Field, err)
	}

	items, changed := Normalize(e.decodeField(snap))
	e.setState(items)

	if changed {
		if err = e.writeRemote(ctx, items); err != nil {
			return fmt.Errorf("refresh write-back %s: %w", e.cfg.Field, err)
		}
	}

	return nil
}

// Patch applies one mutation to the canonical array.
//
// The base array is re-normalized first, guarding against ids lost to
// external local-store edits. In anonymous mode the result lands in the
// local mirror and memory only. When authenticated, the whole array plus a
// fresh timestamp goes to the remote document in a single merge-write
// through the retry executor — and the local mirror and memory are updated
// to the attempted value after that write returns, success or failure. A
// write error propagates to the caller, who must treat it as "written
// locally, not confirmed remotely".
func (e *Engine[T]) Patch(ctx context.Context, action Action[T]) error {
	e.mu.Lock()
	base, _ := Normalize(e.current)
	e.mu.Unlock()

	next := action.apply(base)

	if e.cfg.UID == "" {
		e.setState(next)
		return nil
	}

	err := e.writeRemote(ctx, next)

	// Optimistic regardless of outcome: the mirror tracks the payload we
	// attempted to write, not the confirmed remote state.
	e.setState(next)

	if err != nil {
		return fmt.Errorf("patch %s: %w", e.cfg.Field, err)
	}
	return nil
}

// Subscribe attaches a live listener to the user document. Each snapshot of
// an existing document overwrites memory and the local mirror with the
// normalized collection array (last snapshot wins, no merging with in-flight
// optimistic writes); snapshots of a not-yet-created document are ignored.
// When normalization repaired ids, a corrective write-back is spawned as a
// detached best-effort task whose failure is only logged.
//
// At most one listener is active per engine: resubscribing tears down the
// previous one first. No-op in anonymous mode.
func (e *Engine[T]) Subscribe(ctx context.Context) error {
	if e.cfg.UID == "" {
		return nil
	}

	e.Unsubscribe()

	if err := e.conn.EnsureNetworkEnabled(ctx); err != nil {
		return err
	}

	unsub, err := e.docs.Watch(ctx, e.ref(), func(snap remote.Snapshot) {
		e.onSnapshot(ctx, snap)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", e.cfg.Field, err)
	}

	e.mu.Lock()
	e.unsub = unsub
	e.mu.Unlock()

	return nil
}

// Unsubscribe detaches the current listener, if any. In-flight writes are
// not cancelled.
func (e *Engine[T]) Unsubscribe() {
	e.mu.Lock()
	unsub := e.unsub
	e.unsub = nil
	e.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (e *Engine[T]) onSnapshot(ctx context.Context, snap remote.Snapshot) {
	if !snap.Exists {
		return
	}

	items, changed := Normalize(e.decodeField(snap))
	e.setState(items)

	if !changed {
		return
	}

	go func() {
		if err := e.writeRemote(ctx, items); err != nil {
			e.log.Warn().Err(err).Str("field", e.cfg.Field).Msg("corrective write-back failed")
		}
	}()
}

// writeRemote merge-writes the whole array plus an updated timestamp into
// the user document, failing fast when the connection reports offline.
func (e *Engine[T]) writeRemote(ctx context.Context, items []T) error {
	if err := e.conn.EnsureNetworkEnabled(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.cfg.Field, err)
	}
	ts, _ := json.Marshal(timeNowMilli())

	fields := map[string]json.RawMessage{
		e.cfg.Field:           payload,
		models.UpdatedAtField: ts,
	}

	_, err = WithRetry(ctx, e.retry, "write "+e.cfg.Field, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, e.docs.SetMerge(ctx, e.ref(), fields)
	})
	return err
}

// decodeField extracts the collection array from a snapshot, substituting an
// empty array when the field is absent or malformed.
func (e *Engine[T]) decodeField(snap remote.Snapshot) []T {
	var items []T
	if !snap.Field(e.cfg.Field, &items) {
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// setState installs items as the canonical array and mirrors it into the
// local store. A mirror write failure is logged, not surfaced: memory is
// authoritative once a state transition is decided.
func (e *Engine[T]) setState(items []T) {
	e.mu.Lock()
	e.current = items
	e.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		e.log.Error().Err(err).Str("key", e.cfg.LocalKey).Msg("encode local mirror")
		return
	}
	if err = e.kv.SetItem(e.cfg.LocalKey, string(data)); err != nil {
		e.log.Warn().Err(err).Str("key", e.cfg.LocalKey).Msg("update local mirror")
	}
}

func (e *Engine[T]) loadLocal() []T {
	raw, ok, err := e.kv.GetItem(e.cfg.LocalKey)
	if err != nil {
		e.log.Warn().Err(err).Str("key", e.cfg.LocalKey).Msg("read local mirror")
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err = json.Unmarshal([]byte(raw), &items); err != nil {
		e.log.Warn().Err(err).Str("key", e.cfg.LocalKey).Msg("local mirror corrupt, starting empty")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func (e *Engine[T]) ref() remote.DocumentRef {
	return remote.DocumentRef{Collection: models.UsersCollection, DocID: e.cfg.UID}
}

func timeNowMilli() int64 {
	return time.Now().UnixMilli()
}
