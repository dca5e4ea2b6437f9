package reconcile

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/blocktree"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
)

// Derived is a host selection mapped onto the model.
type Derived struct {
	Selection selection.Selection

	// NeedsRecovery is set when a point could not be resolved. Selection
	// then holds a fallback and the model selection must be forced onto
	// the host.
	NeedsRecovery bool

	// Err is the first resolution failure, or nil.
	Err error
}

// DeriveSelection resolves a host selection against the leaf structure of
// s. When only one point resolves, the fallback is a caret at that point;
// when neither does, it is the current model selection.
func DeriveSelection(s *state.EditorState, p Prober, r HostRange) Derived {
	anchor, aerr := resolvePoint(s, p, r.Anchor)
	focus, ferr := resolvePoint(s, p, r.Focus)

	switch {
	case aerr == nil && ferr == nil:
		sel := s.Content().Select(anchor.Key, anchor.Offset, focus.Key, focus.Offset)
		return Derived{Selection: sel.WithFocus(true)}
	case aerr == nil:
		return Derived{Selection: selection.Collapsed(anchor.Key, anchor.Offset).WithFocus(true), NeedsRecovery: true, Err: ferr}
	case ferr == nil:
		return Derived{Selection: selection.Collapsed(focus.Key, focus.Offset).WithFocus(true), NeedsRecovery: true, Err: aerr}
	default:
		return Derived{Selection: s.Selection(), NeedsRecovery: true, Err: aerr}
	}
}

func resolvePoint(s *state.EditorState, p Prober, hp HostPoint) (selection.Point, error) {
	raw, ok := p.Probe(hp.Node)
	if !ok {
		return selection.Point{}, fmt.Errorf("%w: %q", ErrUnknownNode, hp.Node)
	}
	key, err := blocktree.ParseOffsetKey(raw)
	if err != nil {
		return selection.Point{}, err
	}
	tree, ok := s.BlockTree(key.BlockKey)
	if !ok {
		return selection.Point{}, fmt.Errorf("%w: %q", ErrUnknownBlock, key.BlockKey)
	}
	leaf, ok := tree.Leaf(key.SetIndex, key.LeafIndex)
	if !ok {
		return selection.Point{}, fmt.Errorf("%w: %s", ErrStaleLeaf, key)
	}
	if hp.Offset < 0 || hp.Offset > leaf.End-leaf.Start {
		return selection.Point{}, fmt.Errorf("%w: %s offset %d (len %d)", ErrOffsetOutOfRange, key, hp.Offset, leaf.End-leaf.Start)
	}
	return selection.Point{Key: key.BlockKey, Offset: leaf.Start + hp.Offset}, nil
}

// SyncSelection applies a derived selection to s. A recovery forces the
// selection onto the host; an agreeing host selection is accepted. s is
// returned unchanged when nothing differs.
func SyncSelection(s *state.EditorState, d Derived) *state.EditorState {
	if d.NeedsRecovery {
		return state.ForceSelection(s, d.Selection)
	}
	if d.Selection.Equals(s.Selection()) {
		return s
	}
	return state.AcceptSelection(s, d.Selection)
}
