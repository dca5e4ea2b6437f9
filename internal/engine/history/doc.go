// Package history provides the undo/redo stacks of the editor state.
//
// A Stack holds document snapshots (*content.Content), most recent first.
// Stacks are immutable: Push and Pop return new stacks and never modify
// the receiver, so every editor state keeps its own view of history while
// sharing snapshots with its predecessors.
//
// # Bounded Stacks
//
// A stack created with New(max) keeps at most max entries; pushing beyond
// the bound drops the oldest snapshot:
//
//	undo := history.New(1000)
//	undo = undo.Push(before)
//	top, _ := undo.Peek()
//	undo, _ = undo.Pop()
//
// Snapshots carry their own selection-before/selection-after records, so
// restoring a snapshot also restores the caret it was edited at.
package history
