package state

import (
	"strings"

	"github.com/dshills/inkwell/internal/engine/blocktree"
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// treeEntry caches the tree generated for one block value.
type treeEntry struct {
	block *content.Block
	tree  blocktree.Tree
}

// EditorState is an immutable snapshot of the editor.
type EditorState struct {
	content   *content.Content
	selection selection.Selection

	undo history.Stack
	redo history.Stack

	lastChange       ChangeType
	composing        bool
	nativelyRendered *content.Content
	forceSelection   bool
	allowUndo        bool

	styleOverride    content.StyleSet
	hasStyleOverride bool

	decorator  blocktree.Decorator
	trees      map[string]treeEntry
	directions map[string]blocktree.Direction

	version uint64
}

// Option configures a new EditorState.
type Option func(*EditorState)

// WithDecorator sets the decorator used to build block trees.
func WithDecorator(d blocktree.Decorator) Option {
	return func(s *EditorState) { s.decorator = d }
}

// WithMaxUndo bounds the undo and redo stacks.
func WithMaxUndo(n int) Option {
	return func(s *EditorState) {
		s.undo = history.New(n)
		s.redo = history.New(n)
	}
}

// WithUndo enables or disables undo recording.
func WithUndo(enabled bool) Option {
	return func(s *EditorState) { s.allowUndo = enabled }
}

// WithSelection sets the initial selection. It defaults to a caret at the
// start of the first block.
func WithSelection(sel selection.Selection) Option {
	return func(s *EditorState) { s.selection = sel }
}

// New creates the initial state for c.
func New(c *content.Content, opts ...Option) *EditorState {
	s := &EditorState{
		content:    c,
		selection:  selection.Empty(c.First().Key()),
		undo:       history.New(history.DefaultMaxEntries),
		redo:       history.New(history.DefaultMaxEntries),
		lastChange: None,
		allowUndo:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.regenerate(nil)
	return s
}

// Empty creates the initial state for an empty document.
func Empty(opts ...Option) *EditorState {
	return New(content.Empty(), opts...)
}

func (s *EditorState) clone() *EditorState {
	ns := *s
	ns.version++
	return &ns
}

// regenerate rebuilds derived data for the current content, reusing the
// trees of blocks whose value did not change.
func (s *EditorState) regenerate(prev map[string]treeEntry) {
	trees := make(map[string]treeEntry, s.content.Len())
	for _, b := range s.content.Blocks() {
		if e, ok := prev[b.Key()]; ok && e.block == b {
			trees[b.Key()] = e
			continue
		}
		trees[b.Key()] = treeEntry{block: b, tree: blocktree.Generate(s.content, b, s.decorator)}
	}
	s.trees = trees
	s.directions = blocktree.DirectionMap(s.content)
}

// withContent returns a copy holding c with derived data refreshed.
func (s *EditorState) withContent(c *content.Content) *EditorState {
	ns := s.clone()
	ns.content = c
	ns.regenerate(s.trees)
	return ns
}

// Content returns the current document.
func (s *EditorState) Content() *content.Content { return s.content }

// Selection returns the current selection.
func (s *EditorState) Selection() selection.Selection { return s.selection }

// UndoStack returns the undo stack.
func (s *EditorState) UndoStack() history.Stack { return s.undo }

// RedoStack returns the redo stack.
func (s *EditorState) RedoStack() history.Stack { return s.redo }

// CanUndo reports whether Undo would change the state.
func (s *EditorState) CanUndo() bool { return s.allowUndo && !s.undo.IsEmpty() }

// CanRedo reports whether Redo would change the state.
func (s *EditorState) CanRedo() bool { return s.allowUndo && !s.redo.IsEmpty() }

// LastChangeType returns the type of the edit that produced the state.
func (s *EditorState) LastChangeType() ChangeType { return s.lastChange }

// IsComposing reports whether a composition session is active.
func (s *EditorState) IsComposing() bool { return s.composing }

// NativelyRendered returns the content the host may represent without a
// rebuild, or nil.
func (s *EditorState) NativelyRendered() *content.Content { return s.nativelyRendered }

// IsNativelyRendered reports whether the host already represents the
// current content.
func (s *EditorState) IsNativelyRendered() bool {
	return s.nativelyRendered != nil && s.nativelyRendered == s.content
}

// MustForceSelection reports whether the host must re-apply the model
// selection instead of trusting its own.
func (s *EditorState) MustForceSelection() bool { return s.forceSelection }

// AllowUndo reports whether edits are recorded for undo.
func (s *EditorState) AllowUndo() bool { return s.allowUndo }

// Decorator returns the decorator, or nil.
func (s *EditorState) Decorator() blocktree.Decorator { return s.decorator }

// Version increases with every derived state.
func (s *EditorState) Version() uint64 { return s.version }

// BlockTree returns the leaf tree of the block with the given key.
func (s *EditorState) BlockTree(key string) (blocktree.Tree, bool) {
	e, ok := s.trees[key]
	return e.tree, ok
}

// Direction returns the resolved direction of a block.
func (s *EditorState) Direction(key string) blocktree.Direction {
	return s.directions[key]
}

// DirectionMap returns a copy of the resolved block directions.
func (s *EditorState) DirectionMap() map[string]blocktree.Direction {
	out := make(map[string]blocktree.Direction, len(s.directions))
	for k, v := range s.directions {
		out[k] = v
	}
	return out
}

// InlineStyleOverride returns the pending style override, if any.
func (s *EditorState) InlineStyleOverride() (content.StyleSet, bool) {
	return s.styleOverride, s.hasStyleOverride
}

// CurrentInlineStyle returns the style that typed text will carry: the
// override when one is pending, otherwise the style at the selection.
func (s *EditorState) CurrentInlineStyle() content.StyleSet {
	if s.hasStyleOverride {
		return s.styleOverride
	}
	return modifier.InlineStyleForSelection(s.content, s.selection)
}

// WithInlineStyleOverride returns a state whose next typed text uses style.
func (s *EditorState) WithInlineStyleOverride(style content.StyleSet) *EditorState {
	ns := s.clone()
	ns.styleOverride = style
	ns.hasStyleOverride = true
	return ns
}

// WithComposing returns a state with the composing flag set.
func (s *EditorState) WithComposing(composing bool) *EditorState {
	if s.composing == composing {
		return s
	}
	ns := s.clone()
	ns.composing = composing
	return ns
}

// WithNativelyRendered returns a state marking c as owned by the host.
func (s *EditorState) WithNativelyRendered(c *content.Content) *EditorState {
	ns := s.clone()
	ns.nativelyRendered = c
	return ns
}

// WithForceSelection returns a state with the force flag set.
func (s *EditorState) WithForceSelection(force bool) *EditorState {
	ns := s.clone()
	ns.forceSelection = force
	return ns
}

// WithDecorator returns a state using d, with every block tree rebuilt.
func (s *EditorState) WithDecorator(d blocktree.Decorator) *EditorState {
	ns := s.clone()
	ns.decorator = d
	ns.regenerate(nil)
	return ns
}

// WithAllowUndo returns a state with undo recording enabled or disabled.
// Disabling undo drops both stacks.
func (s *EditorState) WithAllowUndo(allow bool) *EditorState {
	ns := s.clone()
	ns.allowUndo = allow
	if !allow {
		ns.undo = ns.undo.Clear()
		ns.redo = ns.redo.Clear()
	}
	return ns
}

// DebugString renders every block on its own line with the selection
// edges marked by '|'.
func (s *EditorState) DebugString() string {
	var sb strings.Builder
	sel := s.selection
	for i, b := range s.content.Blocks() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		runes := b.Runes()
		var startMark, endMark = -1, -1
		if b.Key() == sel.StartKey() {
			startMark = sel.StartOffset()
		}
		if b.Key() == sel.EndKey() && !sel.IsCollapsed() {
			endMark = sel.EndOffset()
		}
		for off := 0; off <= len(runes); off++ {
			if off == startMark {
				sb.WriteByte('|')
			}
			if off == endMark {
				sb.WriteByte('|')
			}
			if off < len(runes) {
				sb.WriteRune(runes[off])
			}
		}
	}
	return sb.String()
}
