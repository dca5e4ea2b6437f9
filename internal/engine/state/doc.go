// Package state provides EditorState, the single versioned value the
// editor core hands back to its caller after every event.
//
// An EditorState combines the current document, the selection, the
// undo/redo stacks and the reconciliation flags (composing,
// natively rendered content, forced selection). Every operation returns a
// new state; a state is never modified after creation.
//
// # History
//
// Push records an edit. Consecutive edits of the same continuous change
// type (typing, backspacing, forward-deleting) with an unmoved caret share
// a single undo entry, so a typing burst undoes in one step:
//
//	s = state.Push(s, c1, state.InsertCharacters)
//	s = state.Push(s, c2, state.InsertCharacters)
//	s = state.Undo(s) // back to the content before c1
//
// Undo and Redo restore the recorded selection and force it onto the host.
package state
