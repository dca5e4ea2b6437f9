// Package mode defines the editor's input modes.
//
// A Mode is a closed tagged variant: Edit, Composing, Dragging and Cut.
// Count is the number of modes, so tables indexed by Mode can be declared
// with a fixed size and checked for totality.
//
// # Transitions
//
//	         ┌────────────┐
//	   ┌────▶│ Composing  │────┐
//	   │     └────────────┘    │
//	┌──┴───┐ ┌────────────┐    │
//	│ Edit │▶│  Dragging  │────┤
//	└──┬───┘ └────────────┘    │
//	   │     ┌────────────┐    │
//	   └────▶│    Cut     │────┤
//	         └────────────┘    │
//	   ▲                       │
//	   └───────────────────────┘
//
// Every mode returns to Edit; only Edit may enter another mode. The
// Manager enforces this and notifies callbacks of each change.
package mode
