package mode

import "fmt"

// Mode is the input mode of an editor.
type Mode uint8

const (
	// Edit handles ordinary input: typing, deletion, selection changes.
	Edit Mode = iota

	// Composing routes input through an active composition session.
	Composing

	// Dragging is active while the user drags a selection or external
	// data over the editor.
	Dragging

	// Cut is active between a cut command and the host's removal of the
	// cut text.
	Cut

	// Count is the number of modes.
	Count int = iota
)

var names = [Count]string{
	Edit:      "edit",
	Composing: "composing",
	Dragging:  "dragging",
	Cut:       "cut",
}

// String returns the mode name.
func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return names[m]
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return int(m) < Count
}

// Parse returns the mode with the given name.
func Parse(name string) (Mode, error) {
	for i, n := range names {
		if n == name {
			return Mode(i), nil
		}
	}
	return Edit, fmt.Errorf("unknown mode: %s", name)
}

// All returns every mode in order.
func All() []Mode {
	out := make([]Mode, Count)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// CanTransition reports whether the editor may move from one mode to
// another.
func CanTransition(from, to Mode) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	return from == Edit || to == Edit
}
