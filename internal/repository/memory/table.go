// Package memory keeps the plan catalogs in process memory. It backs the
// catalog service when database.driver is "memory" and the service tests.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// table is an insertion-ordered map guarded by a single lock.
type table[T any] struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	rows  map[primitive.ObjectID]T
	owner func(T) primitive.ObjectID
}

func newTable[T any](owner func(T) primitive.ObjectID) *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]T), owner: owner}
}

func (t *table[T]) insert(id primitive.ObjectID, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.order = append(t.order, id)
	t.rows[id] = row
}

func (t *table[T]) get(id primitive.ObjectID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) byOwner(ownerID primitive.ObjectID) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, id := range t.order {
		if row := t.rows[id]; t.owner(row) == ownerID {
			out = append(out, row)
		}
	}
	return out
}

// modify applies fn to a copy of the row and stores the result atomically.
func (t *table[T]) modify(id primitive.ObjectID, fn func(row *T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(&row)
	t.rows[id] = row
	return row, true
}
