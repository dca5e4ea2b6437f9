package engine

import (
	"maps"
	"strings"

	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/state"
)

// InsertNative applies characters that the host surface inserted into its
// own rendering. The second result reports whether the host may keep its
// rendering: the selection was a caret away from any leaf start and the
// block kept its fingerprint and direction. Otherwise the returned state
// must be rendered from the model.
func (e *Engine) InsertNative(s *state.EditorState, text string) (*state.EditorState, bool, error) {
	if e.readOnly {
		return s, false, ErrReadOnly
	}
	sel := s.Selection()
	if text == "" || strings.ContainsAny(text, "\r\n") || !sel.IsCollapsed() {
		ns, err := e.Apply(s, InsertText{Text: text})
		e.observeNative(false)
		return ns, false, err
	}

	c := s.Content()
	out, err := modifier.InsertText(c, sel, text, s.CurrentInlineStyle(), modifier.EntityKeyForSelection(c, sel))
	if err != nil {
		return s, false, err
	}
	ns := e.finish(state.Push(s, out, state.InsertCharacters), state.InsertCharacters)

	native := CanRenderNatively(s, ns)
	e.observeNative(native)
	if !native {
		return ns, false, nil
	}
	return ns.WithForceSelection(false).WithNativelyRendered(ns.Content()), true, nil
}

// CanRenderNatively reports whether the host rendering of before remains a
// faithful rendering of after: the anchor block of before's selection must
// be a caret away from any leaf start and keep its fingerprint, and no
// block may change direction.
func CanRenderNatively(before, after *state.EditorState) bool {
	sel := before.Selection()
	if !sel.IsCollapsed() {
		return false
	}
	key := sel.AnchorKey()
	oldTree, ok := before.BlockTree(key)
	if !ok || oldTree.IsLeafStart(sel.AnchorOffset()) {
		return false
	}
	newTree, ok := after.BlockTree(key)
	if !ok || oldTree.Fingerprint() != newTree.Fingerprint() {
		return false
	}
	// a neutral block inherits its direction, so typing a strong character
	// can flip the blocks after it as well
	return maps.Equal(before.DirectionMap(), after.DirectionMap())
}

func (e *Engine) observeNative(accepted bool) {
	if e.observer != nil {
		e.observer.NativeInsert(accepted)
	}
}
