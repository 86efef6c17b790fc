// Package memstore provides the keyed in-memory tables backing the memory adapters.
package memstore

import (
	"slices"
	"sync"
)

// Table stores rows of a single entity type keyed by an allocated identifier.
// Identifiers start at 1, increase monotonically and are never reused, even after deletes.
// Scans visit rows in ascending identifier order, which is also insertion order.
type Table[T any] struct {
	mu     sync.RWMutex
	rows   map[int64]T
	ids    []int64
	nextID int64
	clone  func(T) T
}

// NewTable creates an empty table. clone deep-copies a row so callers never share
// mutable state with the table; nil means rows are copied by value.
func NewTable[T any](clone func(T) T) *Table[T] {
	if clone == nil {
		clone = func(row T) T { return row }
	}
	return &Table[T]{rows: map[int64]T{}, clone: clone}
}

// Insert allocates the next identifier and stores the row produced by build.
// When build fails the identifier is not consumed and nothing is stored.
func (t *Table[T]) Insert(build func(id int64) (T, error)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID + 1
	row, err := build(id)
	if err != nil {
		var zero T
		return zero, err
	}
	t.nextID = id
	t.rows[id] = t.clone(row)
	t.ids = append(t.ids, id)
	return t.clone(row), nil
}

// InsertUnique behaves like Insert unless a stored row matches dup, in which case nothing is
// stored and the boolean is false.
func (t *Table[T]) InsertUnique(dup func(T) bool, build func(id int64) (T, error)) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	for _, id := range t.ids {
		if dup(t.rows[id]) {
			return zero, false, nil
		}
	}
	id := t.nextID + 1
	row, err := build(id)
	if err != nil {
		return zero, true, err
	}
	t.nextID = id
	t.rows[id] = t.clone(row)
	t.ids = append(t.ids, id)
	return t.clone(row), true, nil
}

// Get returns a copy of the row stored under id.
func (t *Table[T]) Get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(row), true
}

// Update applies mutate to a copy of the stored row and stores the result.
// The boolean reports whether the row exists. A mutate error leaves the stored row untouched.
func (t *Table[T]) Update(id int64, mutate func(*T) error) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	row, ok := t.rows[id]
	if !ok {
		return zero, false, nil
	}
	working := t.clone(row)
	if err := mutate(&working); err != nil {
		return zero, true, err
	}
	t.rows[id] = t.clone(working)
	return working, true, nil
}

// Delete removes the row stored under id and reports whether a removal occurred.
func (t *Table[T]) Delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleteLocked(id)
}

// DeleteFirst removes the first row, in insertion order, matching pred.
func (t *Table[T]) DeleteFirst(pred func(T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range t.ids {
		row := t.rows[id]
		if pred(row) {
			t.deleteLocked(id)
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns copies of every row matching pred in insertion order. A nil pred matches all rows.
func (t *Table[T]) Filter(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		row := t.rows[id]
		if pred == nil || pred(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// First returns the first row, in insertion order, matching pred.
func (t *Table[T]) First(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.ids {
		row := t.rows[id]
		if pred(row) {
			return t.clone(row), true
		}
	}
	var zero T
	return zero, false
}

// Len reports the number of stored rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *Table[T]) deleteLocked(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	if idx := slices.Index(t.ids, id); idx >= 0 {
		t.ids = slices.Delete(t.ids, idx, idx+1)
	}
	return true
}
