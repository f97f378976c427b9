// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

// Package syncer reconciles user-owned entity arrays between the local
// key/value mirror and the per-user remote document.
//
// The package has three layers. [Normalize] repairs entity identifiers.
// [WithRetry] wraps fallible remote calls with classified retries and
// exponential backoff. [Engine] ties both to a single (uid, field) pairing:
// it owns the canonical in-memory array, mediates every mutation between the
// local mirror and the remote document, and consumes the live snapshot feed.
package syncer

// Record is the entity constraint for the sync layer: any value carrying a
// string identifier that can be replaced without mutating the receiver.
// The self-referential parameter keeps WithRecordID's result typed as the
// concrete entity rather than an interface.
type Record[T any] interface {
	RecordID() string
	WithRecordID(id string) T
}

type actionKind int

const (
	actionAdd actionKind = iota
	actionUpdate
	actionDelete
)

// Action is one mutation of a collection's canonical array, built with
// [Add], [Update] or [Delete].
type Action[T Record[T]] struct {
	kind actionKind
	item T
	id   string
}

// Add appends item to the array. An existing entity with the same id is
// removed first, so adding a known id behaves as replace-and-move-to-end.
func Add[T Record[T]](item T) Action[T] {
	return Action[T]{kind: actionAdd, item: item}
}

// Update replaces the entity with a matching id in place, preserving its
// position. An unknown id leaves the array unchanged.
func Update[T Record[T]](item T) Action[T] {
	return Action[T]{kind: actionUpdate, item: item}
}

// Delete removes the entity with the given id, if present.
func Delete[T Record[T]](id string) Action[T] {
	return Action[T]{kind: actionDelete, id: id}
}

// apply computes the new array for the action over base. base is expected to
// be normalized already; the action's target item gets an id if it lacks one.
func (a Action[T]) apply(base []T) []T {
	switch a.kind {
	case actionAdd:
		item := ensureRecordID(a.item, base)
		next := removeByID(base, item.RecordID())
		return append(next, item)

	case actionUpdate:
		item := ensureRecordID(a.item, base)
		next := make([]T, len(base))
		copy(next, base)
		for i := range next {
			if next[i].RecordID() == item.RecordID() {
				next[i] = item
				break
			}
		}
		return next

	case actionDelete:
		return removeByID(base, a.id)
	}

	return base
}

func removeByID[T Record[T]](items []T, id string) []T {
	next := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			next = append(next, it)
		}
	}
	return next
}

func ensureRecordID[T Record[T]](item T, existing []T) T {
	if item.RecordID() != "" {
		return item
	}
	used := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		used[it.RecordID()] = struct{}{}
	}
	return item.WithRecordID(newRecordID(used))
}
