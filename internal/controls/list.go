package controls

import (
	"fmt"
	"iter"
)

// List is an insertion-ordered mapping from control or property id to Value.
// It backs both the outbound controls of a capture request and the metadata
// the pipeline reports back.
//
// A List performs no schema validation of its own; checking a value against
// the camera's control limits is the caller's job, using the InfoMap. Lists
// are not safe for concurrent mutation; callers serialize writers.
type List struct {
	order  []uint32
	values map[uint32]Value
}

// NewList creates an empty list.
func NewList() *List {
	return &List{values: make(map[uint32]Value)}
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.order)
}

// Contains reports whether id has an entry.
func (l *List) Contains(id uint32) bool {
	_, ok := l.values[id]
	return ok
}

// Get returns the value stored for id.
func (l *List) Get(id uint32) (Value, error) {
	v, ok := l.values[id]
	if !ok {
		return Value{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return v, nil
}

// Set inserts or overwrites the value for id. Overwriting keeps the id's
// original position in iteration order; a list never holds two entries for
// the same id.
//
// Set always succeeds locally. Whether the pipeline accepts, clamps or
// ignores the value is only observable once the list reaches it at start or
// queue time.
func (l *List) Set(id uint32, v Value) {
	if _, ok := l.values[id]; !ok {
		l.order = append(l.order, id)
	}
	l.values[id] = v
}

// All returns an iterator over (id, value) pairs in insertion order. The
// sequence is a point-in-time pass; mutating the list while iterating is
// not supported.
func (l *List) All() iter.Seq2[uint32, Value] {
	return func(yield func(uint32, Value) bool) {
		for _, id := range l.order {
			if !yield(id, l.values[id]) {
				return
			}
		}
	}
}

// Merge copies every entry of other into l, overwriting duplicates.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	for id, v := range other.All() {
		l.Set(id, v)
	}
}

// Clear removes all entries.
func (l *List) Clear() {
	l.order = l.order[:0]
	clear(l.values)
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	out := NewList()
	out.Merge(l)
	return out
}
