// Package fieldarray manages an ordered list of form entries whose identity
// is independent of their position.
//
// Entries live in an arena keyed by a monotonically increasing ID; the
// rendered order is a separate slice of IDs. Removing an entry never changes
// the ID of any other entry, so UIs can key their widgets by ID.
package fieldarray

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned by position based operations outside [0, Len()).
	ErrOutOfRange = errors.New("fieldarray: position out of range")
	// ErrUnknownID is returned for IDs that are not (or no longer) present.
	ErrUnknownID = errors.New("fieldarray: unknown entry id")
)

// ID identifies an entry for as long as it is present. IDs are never reused.
type ID uint64

func (id ID) String() string { return fmt.Sprintf("entry-%d", uint64(id)) }

// Entry is a value together with its identity.
type Entry[T any] struct {
	ID    ID
	Value T
}

// Array is an ordered collection of entries. It is not safe for concurrent
// use; it is owned by a single form instance.
type Array[T any] struct {
	last     ID
	arena    map[ID]T
	order    []ID
	watchers []func()
}

// New returns an empty Array.
func New[T any]() *Array[T] {
	return &Array[T]{arena: map[ID]T{}}
}

// OnChange registers fn to run synchronously after every mutation.
func (a *Array[T]) OnChange(fn func()) {
	a.watchers = append(a.watchers, fn)
}

func (a *Array[T]) changed() {
	for _, fn := range a.watchers {
		fn()
	}
}

// Append adds v at the end under a fresh ID.
func (a *Array[T]) Append(v T) {
	a.last++
	a.arena[a.last] = v
	a.order = append(a.order, a.last)
	a.changed()
}

// Remove deletes the entry at pos. Out of range positions leave the array
// untouched and report ErrOutOfRange.
func (a *Array[T]) Remove(pos int) error {
	if pos < 0 || pos >= len(a.order) {
		return fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, pos, len(a.order))
	}
	id := a.order[pos]
	a.order = append(a.order[:pos:pos], a.order[pos+1:]...)
	delete(a.arena, id)
	a.changed()
	return nil
}

// RemoveID deletes the entry with the given ID. Stale IDs leave the array
// untouched and report ErrUnknownID.
func (a *Array[T]) RemoveID(id ID) error {
	pos := a.Index(id)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownID, id)
	}
	return a.Remove(pos)
}

// Update replaces the value of the entry with the given ID.
func (a *Array[T]) Update(id ID, v T) error {
	if _, ok := a.arena[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownID, id)
	}
	a.arena[id] = v
	a.changed()
	return nil
}

// Clear removes every entry. IDs handed out so far are not reused.
func (a *Array[T]) Clear() {
	if len(a.order) == 0 {
		return
	}
	a.order = nil
	a.arena = map[ID]T{}
	a.changed()
}

// Len returns the number of entries.
func (a *Array[T]) Len() int { return len(a.order) }

// At returns the entry at pos.
func (a *Array[T]) At(pos int) (Entry[T], bool) {
	if pos < 0 || pos >= len(a.order) {
		return Entry[T]{}, false
	}
	id := a.order[pos]
	return Entry[T]{ID: id, Value: a.arena[id]}, true
}

// Get returns the value stored under id.
func (a *Array[T]) Get(id ID) (T, bool) {
	v, ok := a.arena[id]
	return v, ok
}

// Index returns the current position of id, or -1.
func (a *Array[T]) Index(id ID) int {
	for i, cur := range a.order {
		if cur == id {
			return i
		}
	}
	return -1
}

// Entries returns a snapshot of the entries in order.
func (a *Array[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, len(a.order))
	for _, id := range a.order {
		out = append(out, Entry[T]{ID: id, Value: a.arena[id]})
	}
	return out
}

// Values returns a snapshot of the values in order.
func (a *Array[T]) Values() []T {
	out := make([]T, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.arena[id])
	}
	return out
}
