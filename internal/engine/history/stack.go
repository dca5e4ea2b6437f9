package history

import "github.com/dshills/inkwell/internal/engine/content"

// DefaultMaxEntries bounds a stack created with a non-positive limit.
const DefaultMaxEntries = 1000

// Stack is an immutable, bounded stack of document snapshots.
// The zero value is an empty stack bounded by DefaultMaxEntries.
type Stack struct {
	// items are stored oldest first; the top of the stack is the last item.
	items      []*content.Content
	maxEntries int
}

// New creates an empty stack holding at most maxEntries snapshots.
func New(maxEntries int) Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return Stack{maxEntries: maxEntries}
}

// Push returns a stack with c on top. When the bound is exceeded the
// oldest snapshot is dropped.
func (s Stack) Push(c *content.Content) Stack {
	limit := s.Max()
	keep := s.items
	if len(keep) >= limit {
		keep = keep[len(keep)-limit+1:]
	}
	items := make([]*content.Content, len(keep), len(keep)+1)
	copy(items, keep)
	items = append(items, c)
	return Stack{items: items, maxEntries: s.maxEntries}
}

// Peek returns the top snapshot.
func (s Stack) Peek() (*content.Content, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

// Pop returns the stack without its top snapshot, and that snapshot.
func (s Stack) Pop() (Stack, *content.Content, bool) {
	top, ok := s.Peek()
	if !ok {
		return s, nil, false
	}
	return Stack{items: s.items[:len(s.items)-1:len(s.items)-1], maxEntries: s.maxEntries}, top, true
}

// Clear returns an empty stack with the same bound.
func (s Stack) Clear() Stack {
	return Stack{maxEntries: s.maxEntries}
}

// Len returns the number of snapshots.
func (s Stack) Len() int { return len(s.items) }

// IsEmpty reports whether the stack has no snapshots.
func (s Stack) IsEmpty() bool { return len(s.items) == 0 }

// Max returns the stack bound.
func (s Stack) Max() int {
	if s.maxEntries <= 0 {
		return DefaultMaxEntries
	}
	return s.maxEntries
}

// Items returns the snapshots, most recent first.
func (s Stack) Items() []*content.Content {
	out := make([]*content.Content, len(s.items))
	for i, c := range s.items {
		out[len(s.items)-1-i] = c
	}
	return out
}
