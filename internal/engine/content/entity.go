package content

import (
	"fmt"
	"maps"
	"strconv"
)

// Mutability controls how an entity's text range reacts to edits.
type Mutability uint8

const (
	// Mutable entities shrink or grow with their text; partial deletion
	// keeps the entity on the remaining characters.
	Mutable Mutability = iota

	// Immutable entities are all-or-nothing: removing any covered
	// character removes the whole range, and inserting inside the range
	// strips the entity.
	Immutable

	// Segmented entities are split into space-delimited segments; removing
	// a character removes only the segments it touches.
	Segmented
)

// String returns the wire name of the mutability class.
func (m Mutability) String() string {
	switch m {
	case Mutable:
		return "MUTABLE"
	case Immutable:
		return "IMMUTABLE"
	case Segmented:
		return "SEGMENTED"
	default:
		return "UNKNOWN"
	}
}

// ParseMutability parses a wire name into a Mutability.
func ParseMutability(s string) (Mutability, error) {
	switch s {
	case "MUTABLE", "mutable":
		return Mutable, nil
	case "IMMUTABLE", "immutable":
		return Immutable, nil
	case "SEGMENTED", "segmented":
		return Segmented, nil
	default:
		return Mutable, fmt.Errorf("%w: %q", ErrUnknownMutability, s)
	}
}

// Entity is an annotation referenced from block characters by key.
type Entity struct {
	Type       string
	Mutability Mutability
	Data       map[string]any
}

// EntityMap is the append-only entity table. The zero value is empty and
// ready to use. Add returns a new map; the receiver is never modified.
type EntityMap struct {
	entries map[string]Entity
	order   []string
	next    int
}

// Add stores e under a freshly allocated key and returns the new map and
// the key.
func (m EntityMap) Add(e Entity) (EntityMap, string) {
	key := strconv.Itoa(m.next + 1)
	entries := make(map[string]Entity, len(m.entries)+1)
	maps.Copy(entries, m.entries)
	e.Data = maps.Clone(e.Data)
	entries[key] = e

	order := make([]string, len(m.order), len(m.order)+1)
	copy(order, m.order)
	order = append(order, key)

	return EntityMap{entries: entries, order: order, next: m.next + 1}, key
}

// Get returns the entity stored under key.
func (m EntityMap) Get(key string) (Entity, bool) {
	e, ok := m.entries[key]
	if !ok {
		return Entity{}, false
	}
	e.Data = maps.Clone(e.Data)
	return e, true
}

// Has reports whether key is present.
func (m EntityMap) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Keys returns entity keys in insertion order.
func (m EntityMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entities.
func (m EntityMap) Len() int {
	return len(m.order)
}
