package content

import (
	"sort"
	"strings"
)

// styleSep separates names inside a StyleSet. Style names never contain it.
const styleSep = "\x1f"

// StyleSet is an immutable, ordered set of inline style names
// (e.g. "BOLD", "ITALIC"). The zero value is the empty set.
//
// StyleSet is comparable with ==, which makes CharMeta comparable too.
type StyleSet struct {
	joined string
}

// NewStyleSet creates a set from the given names. Duplicates and empty
// names are ignored.
func NewStyleSet(names ...string) StyleSet {
	if len(names) == 0 {
		return StyleSet{}
	}
	seen := make(map[string]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)
	return StyleSet{joined: strings.Join(uniq, styleSep)}
}

// Names returns the style names in sorted order.
func (s StyleSet) Names() []string {
	if s.joined == "" {
		return nil
	}
	return strings.Split(s.joined, styleSep)
}

// Len returns the number of styles in the set.
func (s StyleSet) Len() int {
	if s.joined == "" {
		return 0
	}
	return strings.Count(s.joined, styleSep) + 1
}

// IsEmpty returns true if the set has no styles.
func (s StyleSet) IsEmpty() bool {
	return s.joined == ""
}

// Has reports whether name is in the set.
func (s StyleSet) Has(name string) bool {
	for _, n := range s.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Add returns a set that also contains name.
func (s StyleSet) Add(name string) StyleSet {
	if s.Has(name) {
		return s
	}
	return NewStyleSet(append(s.Names(), name)...)
}

// Remove returns a set without name.
func (s StyleSet) Remove(name string) StyleSet {
	if !s.Has(name) {
		return s
	}
	names := s.Names()
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return NewStyleSet(out...)
}

// String returns the set as a comma separated list.
func (s StyleSet) String() string {
	return "{" + strings.Join(s.Names(), ",") + "}"
}
