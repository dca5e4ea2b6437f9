package selection

import (
	"errors"
	"fmt"
)

// Errors returned when a selection cannot be applied to content.
var (
	// ErrUnknownBlock indicates a selection point references a missing block.
	ErrUnknownBlock = errors.New("selection references unknown block")

	// ErrOffsetOutOfRange indicates an offset outside [0, len(block)].
	ErrOffsetOutOfRange = errors.New("selection offset out of range")

	// ErrInconsistentDirection indicates a backward flag that contradicts
	// document order.
	ErrInconsistentDirection = errors.New("selection direction does not match document order")
)

// Point is a single selection edge.
type Point struct {
	Key    string // Block key
	Offset int    // Rune offset into the block text
}

// Selection represents a range over the document.
// Selection is an immutable value type.
type Selection struct {
	anchor   Point
	focus    Point
	backward bool
	hasFocus bool
}

// New creates a selection from anchor to focus.
// backward must be true when focus precedes anchor in document order.
func New(anchorKey string, anchorOffset int, focusKey string, focusOffset int, backward bool) Selection {
	return Selection{
		anchor:   Point{Key: anchorKey, Offset: anchorOffset},
		focus:    Point{Key: focusKey, Offset: focusOffset},
		backward: backward,
	}
}

// Collapsed creates a caret selection at the given point.
func Collapsed(key string, offset int) Selection {
	p := Point{Key: key, Offset: offset}
	return Selection{anchor: p, focus: p}
}

// Empty returns a caret at the start of the given block.
func Empty(key string) Selection {
	return Collapsed(key, 0)
}

// Anchor returns the point where the selection started.
func (s Selection) Anchor() Point { return s.anchor }

// Focus returns the caret point.
func (s Selection) Focus() Point { return s.focus }

// AnchorKey returns the anchor block key.
func (s Selection) AnchorKey() string { return s.anchor.Key }

// AnchorOffset returns the anchor offset.
func (s Selection) AnchorOffset() int { return s.anchor.Offset }

// FocusKey returns the focus block key.
func (s Selection) FocusKey() string { return s.focus.Key }

// FocusOffset returns the focus offset.
func (s Selection) FocusOffset() int { return s.focus.Offset }

// HasFocus reports whether the editor surface owns input focus.
func (s Selection) HasFocus() bool { return s.hasFocus }

// IsBackward returns true if focus precedes anchor.
func (s Selection) IsBackward() bool { return s.backward }

// IsCollapsed returns true if the selection has no extent.
func (s Selection) IsCollapsed() bool {
	return s.anchor == s.focus
}

// IsZero reports whether the selection was never initialized.
func (s Selection) IsZero() bool {
	return s.anchor.Key == "" && s.focus.Key == ""
}

// Start returns the first point in document order.
func (s Selection) Start() Point {
	if s.backward {
		return s.focus
	}
	return s.anchor
}

// End returns the last point in document order.
func (s Selection) End() Point {
	if s.backward {
		return s.anchor
	}
	return s.focus
}

// StartKey returns the block key of the first point.
func (s Selection) StartKey() string { return s.Start().Key }

// StartOffset returns the offset of the first point.
func (s Selection) StartOffset() int { return s.Start().Offset }

// EndKey returns the block key of the last point.
func (s Selection) EndKey() string { return s.End().Key }

// EndOffset returns the offset of the last point.
func (s Selection) EndOffset() int { return s.End().Offset }

// WithFocus returns a copy with the focus flag set.
func (s Selection) WithFocus(hasFocus bool) Selection {
	s.hasFocus = hasFocus
	return s
}

// ExtendTo returns a selection that keeps the anchor and moves the focus.
func (s Selection) ExtendTo(key string, offset int, backward bool) Selection {
	s.focus = Point{Key: key, Offset: offset}
	s.backward = backward
	if s.anchor == s.focus {
		s.backward = false
	}
	return s
}

// MoveTo returns a caret at the given point, keeping the focus flag.
func (s Selection) MoveTo(key string, offset int) Selection {
	p := Point{Key: key, Offset: offset}
	return Selection{anchor: p, focus: p, hasFocus: s.hasFocus}
}

// CollapseToStart collapses the selection to its first point.
func (s Selection) CollapseToStart() Selection {
	p := s.Start()
	return Selection{anchor: p, focus: p, hasFocus: s.hasFocus}
}

// CollapseToEnd collapses the selection to its last point.
func (s Selection) CollapseToEnd() Selection {
	p := s.End()
	return Selection{anchor: p, focus: p, hasFocus: s.hasFocus}
}

// HasEdgeWithin reports whether either edge lies in block key within
// [start, end]. Used by renderers to decide which leaf owns the caret.
func (s Selection) HasEdgeWithin(key string, start, end int) bool {
	within := func(p Point) bool {
		return p.Key == key && p.Offset >= start && p.Offset <= end
	}
	return within(s.anchor) || within(s.focus)
}

// Equals returns true if both selections have the same points, direction
// and focus state.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// SameRange returns true if both selections cover the same range,
// regardless of direction and focus.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Caret(%s:%d)", s.anchor.Key, s.anchor.Offset)
	}
	dir := "→"
	if s.backward {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s:%d%s%s:%d)", s.anchor.Key, s.anchor.Offset, dir, s.focus.Key, s.focus.Offset)
}
