package state

import (
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// Push records c as the new current content, produced by an edit of type
// ct. The previous content is pushed onto the undo stack unless the edit
// continues a burst of the same continuous type from an unmoved caret.
// The selection becomes c's recorded selection-after and is forced onto
// the host.
func Push(s *EditorState, c *content.Content, ct ChangeType) *EditorState {
	if c == s.content {
		return s
	}
	current := s.content
	ns := s.withContent(c)
	ns.lastChange = ct
	ns.selection = c.SelectionAfter()
	ns.forceSelection = true
	ns.nativelyRendered = nil
	if !ct.keepsStyleOverride() {
		ns.hasStyleOverride = false
		ns.styleOverride = content.StyleSet{}
	}
	if !s.allowUndo {
		return ns
	}

	if mustBecomeBoundary(s, ct) {
		ns.undo = s.undo.Push(current)
		ns.content = ns.content.WithSelectionBefore(s.selection)
	} else {
		ns.content = ns.content.WithSelectionBefore(current.SelectionBefore())
	}
	ns.redo = s.redo.Clear()
	return ns
}

// mustBecomeBoundary reports whether an edit of type ct starts a new undo
// entry.
func mustBecomeBoundary(s *EditorState, ct ChangeType) bool {
	if !s.selection.SameRange(s.content.SelectionAfter()) {
		return true
	}
	return ct != s.lastChange || !ct.IsContinuous()
}

// Undo restores the content on top of the undo stack and the selection
// recorded before the undone edit. It returns s unchanged when there is
// nothing to undo.
func Undo(s *EditorState) *EditorState {
	if !s.allowUndo {
		return s
	}
	undo, prev, ok := s.undo.Pop()
	if !ok {
		return s
	}
	current := s.content
	ns := s.withContent(prev)
	ns.undo = undo
	ns.redo = s.redo.Push(current)
	ns.selection = current.SelectionBefore()
	ns.forceSelection = true
	ns.lastChange = UndoChange
	ns.nativelyRendered = nil
	ns.hasStyleOverride = false
	ns.styleOverride = content.StyleSet{}
	return ns
}

// Redo reapplies the content on top of the redo stack. It returns s
// unchanged when there is nothing to redo.
func Redo(s *EditorState) *EditorState {
	if !s.allowUndo {
		return s
	}
	redo, next, ok := s.redo.Pop()
	if !ok {
		return s
	}
	ns := s.withContent(next)
	ns.undo = s.undo.Push(s.content)
	ns.redo = redo
	ns.selection = next.SelectionAfter()
	ns.forceSelection = true
	ns.lastChange = RedoChange
	ns.nativelyRendered = nil
	ns.hasStyleOverride = false
	ns.styleOverride = content.StyleSet{}
	return ns
}

// AcceptSelection replaces the selection with one the host already shows.
func AcceptSelection(s *EditorState, sel selection.Selection) *EditorState {
	return updateSelection(s, sel, false)
}

// ForceSelection replaces the selection and instructs the host to apply
// it imperatively.
func ForceSelection(s *EditorState, sel selection.Selection) *EditorState {
	return updateSelection(s, sel, true)
}

func updateSelection(s *EditorState, sel selection.Selection, force bool) *EditorState {
	ns := s.clone()
	ns.selection = sel
	ns.forceSelection = force
	ns.nativelyRendered = nil
	ns.hasStyleOverride = false
	ns.styleOverride = content.StyleSet{}
	return ns
}
