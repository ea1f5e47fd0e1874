package controls

import (
	"fmt"
	"iter"
	"sort"
)

// Info describes the legal domain of one control on one camera instance:
// minimum, maximum and default values, plus the enumerated choices for
// controls with a discrete domain. It is computed by the pipeline at
// configuration time and is read-only to callers.
type Info struct {
	Min    Value
	Max    Value
	Def    Value
	Values []Value
}

func (i Info) String() string {
	return fmt.Sprintf("[%s..%s] def %s", i.Min, i.Max, i.Def)
}

// InfoMap is the per-camera table of control limits, keyed by control id.
// Keys are unique. The map is built once by the pipeline and never mutated
// afterwards, so reads need no locking; it is invalidated when the camera is
// reconfigured.
type InfoMap struct {
	infos map[uint32]Info
}

// NewInfoMap builds an info map from its entries. The entries map is copied.
func NewInfoMap(entries map[uint32]Info) *InfoMap {
	infos := make(map[uint32]Info, len(entries))
	for id, info := range entries {
		infos[id] = info
	}
	return &InfoMap{infos: infos}
}

// Len returns the number of entries.
func (m *InfoMap) Len() int {
	return len(m.infos)
}

// At returns the info for id, failing with ErrNotFound for unknown ids.
func (m *InfoMap) At(id uint32) (Info, error) {
	info, ok := m.infos[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return info, nil
}

// Find returns the info for id and whether it exists.
func (m *InfoMap) Find(id uint32) (Info, bool) {
	info, ok := m.infos[id]
	return info, ok
}

// Count returns 1 if id has an entry and 0 otherwise.
func (m *InfoMap) Count(id uint32) int {
	if _, ok := m.infos[id]; ok {
		return 1
	}
	return 0
}

// All returns an iterator over (id, info) pairs in ascending id order.
func (m *InfoMap) All() iter.Seq2[uint32, Info] {
	ids := make([]uint32, 0, len(m.infos))
	for id := range m.infos {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return func(yield func(uint32, Info) bool) {
		for _, id := range ids {
			if !yield(id, m.infos[id]) {
				return
			}
		}
	}
}
