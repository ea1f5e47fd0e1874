package controls

import (
	"fmt"
	"sync"
)

// Entry is one row of the id registry: the schema-declared name and value
// type for a control or property id.
type Entry struct {
	Name    string
	Type    ValueType
	IsArray bool
}

// ControlEntry looks up the registry row for a control id. Unknown ids are
// not an error; the id space is open ended so pipelines can layer custom
// controls over the stable set.
func ControlEntry(id uint32) (Entry, bool) {
	e, ok := controlTable[id]
	return e, ok
}

// ControlName returns the schema name of a control id, or its numeric form
// for unknown ids.
func ControlName(id uint32) string {
	if e, ok := controlTable[id]; ok {
		return e.Name
	}
	return fmt.Sprintf("control(%d)", id)
}

// PropertyEntry looks up the registry row for a property id.
func PropertyEntry(id uint32) (Entry, bool) {
	e, ok := propertyTable[id]
	return e, ok
}

// PropertyName returns the schema name of a property id, or its numeric form
// for unknown ids.
func PropertyName(id uint32) string {
	if e, ok := propertyTable[id]; ok {
		return e.Name
	}
	return fmt.Sprintf("property(%d)", id)
}

// IDMap aliases numeric ids onto registry entries. It starts out seeded from
// one of the generated tables and lets a pipeline register vendor-specific
// ids at runtime without touching the stable schema.
type IDMap struct {
	mu      sync.RWMutex
	entries map[uint32]Entry
}

// NewControlIDMap returns an IDMap seeded from the generated control table.
func NewControlIDMap() *IDMap {
	return newIDMap(controlTable)
}

// NewPropertyIDMap returns an IDMap seeded from the generated property table.
func NewPropertyIDMap() *IDMap {
	return newIDMap(propertyTable)
}

func newIDMap(seed map[uint32]Entry) *IDMap {
	entries := make(map[uint32]Entry, len(seed))
	for id, e := range seed {
		entries[id] = e
	}
	return &IDMap{entries: entries}
}

// Register aliases id to a vendor entry. Registering an id that already
// exists fails; schema rows never change meaning.
func (m *IDMap) Register(id uint32, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[id]; ok {
		return fmt.Errorf("%w: id %d already bound to %q", ErrInvalidArgument, id, existing.Name)
	}
	m.entries[id] = e
	return nil
}

// Find returns the entry aliased to id.
func (m *IDMap) Find(id uint32) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	return e, ok
}

// Len returns the number of aliased ids.
func (m *IDMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
