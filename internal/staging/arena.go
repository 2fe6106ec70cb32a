// Package staging holds lesson records in memory until a lesson is finalized.
//
// Records live under client-side temporary ids (UUIDs) that are never sent to the
// database. Server ids replace them only after the parent row has been inserted.
package staging

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("staged record not found")
	ErrDraftNotFound = errors.New("draft not found")
	ErrForbidden     = errors.New("draft belongs to another professor")
)

// Arena keeps values under temporary ids, preserving insertion order
type Arena[T any] struct {
	order []uuid.UUID
	items map[uuid.UUID]T
}

// NewArena creates an empty arena
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{items: make(map[uuid.UUID]T)}
}

// Insert stores the value built for a new temporary id and returns that id
func (a *Arena[T]) Insert(build func(id uuid.UUID) T) uuid.UUID {
	id := uuid.New()
	a.items[id] = build(id)
	a.order = append(a.order, id)
	return id
}

// Get returns the value stored under id
func (a *Arena[T]) Get(id uuid.UUID) (T, bool) {
	v, ok := a.items[id]
	return v, ok
}

// Set replaces the value under an existing id
func (a *Arena[T]) Set(id uuid.UUID, v T) bool {
	if _, ok := a.items[id]; !ok {
		return false
	}
	a.items[id] = v
	return true
}

// Delete removes id, reporting whether it was present
func (a *Arena[T]) Delete(id uuid.UUID) bool {
	if _, ok := a.items[id]; !ok {
		return false
	}
	delete(a.items, id)
	for i, key := range a.order {
		if key == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every value
func (a *Arena[T]) Clear() {
	a.order = nil
	a.items = make(map[uuid.UUID]T)
}

// Len returns the number of stored values
func (a *Arena[T]) Len() int {
	return len(a.order)
}

// Keys returns the temporary ids in insertion order
func (a *Arena[T]) Keys() []uuid.UUID {
	keys := make([]uuid.UUID, len(a.order))
	copy(keys, a.order)
	return keys
}

// Values returns the stored values in insertion order
func (a *Arena[T]) Values() []T {
	values := make([]T, 0, len(a.order))
	for _, id := range a.order {
		values = append(values, a.items[id])
	}
	return values
}
