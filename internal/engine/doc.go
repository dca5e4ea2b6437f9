// Package engine is the edit facade of the inkwell editor core.
//
// The engine turns edit intents (typing, deletion, block and style
// commands, paste, drag) into new editor states. It combines the pure edit
// operations of the modifier package with the history rules of the state
// package, so callers deal with a single call:
//
//	e := engine.New()
//	s := state.New(content.FromText("Hello world"))
//	s, err := e.Apply(s, engine.InsertText{Text: "!"})
//
// # Sub-packages
//
//   - content: immutable blocks, characters and the entity table
//   - selection: immutable anchor/focus ranges
//   - modifier: pure edit operations on content
//   - history: bounded undo/redo stacks
//   - state: the versioned EditorState value
//   - blocktree: leaf segmentation, fingerprints and text direction
//   - encoding: the raw interchange form
//
// # Native Insertion
//
// InsertNative handles characters the host surface has already inserted
// into its own rendering. When the edit leaves the block's leaf structure
// and direction unchanged, the resulting state marks its content as
// natively rendered and the host keeps its nodes; otherwise the host must
// rebuild from the model.
//
// # Errors
//
// An intent whose selection does not fit the document fails with
// ErrInvalidRange and the input state is returned unchanged. Edits are
// never partially applied.
//
// # Thread Safety
//
// An Engine holds only configuration and may be shared. Editor states are
// immutable values.
package engine
