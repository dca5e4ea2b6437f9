package state

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/blocktree"
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
)

func newState(t *testing.T, texts ...string) *EditorState {
	t.Helper()
	blocks := make([]*content.Block, len(texts))
	for i, text := range texts {
		blocks[i] = content.NewTextBlock(string(rune('a'+i)), text)
	}
	c, err := content.New(blocks, content.EntityMap{})
	require.NoError(t, err)
	return New(c)
}

func typeText(t *testing.T, s *EditorState, text string) *EditorState {
	t.Helper()
	c, err := modifier.InsertText(s.Content(), s.Selection(), text, s.CurrentInlineStyle(), "")
	require.NoError(t, err)
	return Push(s, c, InsertCharacters)
}

func TestNewState(t *testing.T) {
	s := newState(t, "Hello", "world")
	assert.Equal(t, selection.Collapsed("a", 0), s.Selection())
	assert.Equal(t, None, s.LastChangeType())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.True(t, s.AllowUndo())

	tree, ok := s.BlockTree("b")
	require.True(t, ok)
	assert.Equal(t, ".1", tree.Fingerprint())
	assert.Equal(t, blocktree.LTR, s.Direction("a"))
}

func TestTypingBurstCollapses(t *testing.T) {
	s := AcceptSelection(newState(t, "Hi"), selection.Collapsed("a", 2))
	for _, ch := range []string{" ", "t", "h", "e", "r", "e"} {
		s = typeText(t, s, ch)
	}
	assert.Equal(t, "Hi there", s.Content().PlainText())
	assert.Equal(t, 1, s.UndoStack().Len())

	undone := Undo(s)
	assert.Equal(t, "Hi", undone.Content().PlainText())
	assert.Equal(t, selection.Collapsed("a", 2), undone.Selection())
	assert.True(t, undone.MustForceSelection())
	assert.Equal(t, UndoChange, undone.LastChangeType())
}

func TestSelectionMoveBreaksBurst(t *testing.T) {
	s := AcceptSelection(newState(t, "ab"), selection.Collapsed("a", 2))
	s = typeText(t, s, "c")
	s = AcceptSelection(s, selection.Collapsed("a", 0))
	s = typeText(t, s, "x")
	assert.Equal(t, "xabc", s.Content().PlainText())
	assert.Equal(t, 2, s.UndoStack().Len())
}

func TestChangeTypeBreaksBurst(t *testing.T) {
	s := AcceptSelection(newState(t, "ab"), selection.Collapsed("a", 2))
	s = typeText(t, s, "c")

	target, err := modifier.BackspaceRange(s.Content(), s.Selection())
	require.NoError(t, err)
	c, err := modifier.RemoveRange(s.Content(), target, modifier.Backward)
	require.NoError(t, err)
	s = Push(s, c, BackspaceCharacter)
	assert.Equal(t, 2, s.UndoStack().Len())

	s = Push(s, mustSplit(t, s), SplitBlock)
	s = Push(s, mustSplit(t, s), SplitBlock)
	assert.Equal(t, 4, s.UndoStack().Len(), "non-continuous edits never merge")
}

func mustSplit(t *testing.T, s *EditorState) *content.Content {
	t.Helper()
	c, err := modifier.SplitBlock(s.Content(), s.Selection())
	require.NoError(t, err)
	return c
}

func TestUndoRedoInverse(t *testing.T) {
	edits := []func(*EditorState) (*content.Content, ChangeType, error){
		func(s *EditorState) (*content.Content, ChangeType, error) {
			c, err := modifier.InsertText(s.Content(), s.Selection(), "xyz", content.StyleSet{}, "")
			return c, InsertCharacters, err
		},
		func(s *EditorState) (*content.Content, ChangeType, error) {
			c, err := modifier.RemoveRange(s.Content(), selection.New("a", 1, "b", 2, false), modifier.Forward)
			return c, RemoveRange, err
		},
		func(s *EditorState) (*content.Content, ChangeType, error) {
			c, err := modifier.SplitBlock(s.Content(), s.Selection())
			return c, SplitBlock, err
		},
		func(s *EditorState) (*content.Content, ChangeType, error) {
			c, err := modifier.ApplyInlineStyle(s.Content(), selection.New("a", 0, "a", 3, false), "BOLD")
			return c, ChangeInlineStyle, err
		},
	}
	for i, edit := range edits {
		s := AcceptSelection(newState(t, "Hello", "world"), selection.Collapsed("a", 3))
		c, ct, err := edit(s)
		require.NoError(t, err, "edit %d", i)

		pushed := Push(s, c, ct)
		undone := Undo(pushed)
		assert.True(t, undone.Content().Equal(s.Content()), "edit %d", i)
		assert.Equal(t, s.Selection(), undone.Selection(), "edit %d", i)

		redone := Redo(undone)
		assert.True(t, redone.Content().Equal(pushed.Content()), "edit %d", i)
		assert.Equal(t, pushed.Selection(), redone.Selection(), "edit %d", i)
		assert.Equal(t, RedoChange, redone.LastChangeType())
	}
}

func TestUndoRedoEmptyAreNoops(t *testing.T) {
	s := newState(t, "x")
	assert.Same(t, s, Undo(s))
	assert.Same(t, s, Redo(s))
}

func TestPushClearsRedo(t *testing.T) {
	s := typeText(t, newState(t, ""), "a")
	s = Undo(s)
	require.True(t, s.CanRedo())
	s = typeText(t, s, "b")
	assert.False(t, s.CanRedo())
}

func TestPushSameContentIsNoop(t *testing.T) {
	s := newState(t, "x")
	assert.Same(t, s, Push(s, s.Content(), InsertCharacters))
}

func TestDisallowUndo(t *testing.T) {
	s := newState(t, "").WithAllowUndo(false)
	s = typeText(t, s, "a")
	assert.Equal(t, "a", s.Content().PlainText())
	assert.False(t, s.CanUndo())
	assert.Same(t, s, Undo(s))
}

func TestAcceptAndForceSelection(t *testing.T) {
	s := newState(t, "Hello").WithNativelyRendered(nil)
	forced := ForceSelection(s, selection.Collapsed("a", 2))
	assert.True(t, forced.MustForceSelection())
	accepted := AcceptSelection(forced, selection.Collapsed("a", 3))
	assert.False(t, accepted.MustForceSelection())
	assert.Equal(t, 3, accepted.Selection().FocusOffset())
	assert.Greater(t, accepted.Version(), s.Version())
}

func TestInlineStyleOverride(t *testing.T) {
	bold := content.NewStyleSet("BOLD")
	s := newState(t, "ab").WithInlineStyleOverride(bold)
	assert.Equal(t, bold, s.CurrentInlineStyle())

	split := Push(s, mustSplit(t, s), SplitBlock)
	_, ok := split.InlineStyleOverride()
	assert.True(t, ok, "split keeps the override")

	typed := typeText(t, split, "x")
	_, ok = typed.InlineStyleOverride()
	assert.False(t, ok)
	b, _ := typed.Content().Block(typed.Selection().AnchorKey())
	assert.Equal(t, bold, b.StyleAt(0))
}

func TestBlockTreesFollowDecorator(t *testing.T) {
	d := blocktree.NewCompositeDecorator(blocktree.RegexStrategy(regexp.MustCompile(`#\w+`)))
	s := New(content.FromText("see #go"), WithDecorator(d), WithMaxUndo(5))
	key := s.Content().First().Key()
	tree, _ := s.BlockTree(key)
	assert.Equal(t, ".1-0.0.3.1", tree.Fingerprint())

	plain := s.WithDecorator(nil)
	tree, _ = plain.BlockTree(key)
	assert.Equal(t, ".1", tree.Fingerprint())
	assert.Equal(t, 5, s.UndoStack().Max())
}

func TestDirectionMapUpdates(t *testing.T) {
	s := newState(t, "")
	s = typeText(t, s, "שלום")
	assert.Equal(t, blocktree.RTL, s.DirectionMap()["a"])
}

func TestComposingFlag(t *testing.T) {
	s := newState(t, "")
	c := s.WithComposing(true)
	assert.True(t, c.IsComposing())
	assert.Same(t, c, c.WithComposing(true))
	assert.False(t, c.WithComposing(false).IsComposing())
}

func TestIsNativelyRendered(t *testing.T) {
	s := typeText(t, newState(t, ""), "a")
	assert.False(t, s.IsNativelyRendered())
	n := s.WithNativelyRendered(s.Content())
	assert.True(t, n.IsNativelyRendered())
	assert.False(t, typeText(t, n, "b").IsNativelyRendered())
}

func TestDebugString(t *testing.T) {
	s := newState(t, "Hello", "big", "world")
	s = AcceptSelection(s, s.Content().Select("a", 2, "c", 3))
	assert.Equal(t, "He|llo\nbig\nwor|ld", s.DebugString())

	s = AcceptSelection(s, selection.Collapsed("b", 1))
	assert.Equal(t, "Hello\nb|ig\nworld", s.DebugString())
}

func TestChangeTypeContinuity(t *testing.T) {
	assert.True(t, InsertCharacters.IsContinuous())
	assert.True(t, DeleteCharacter.IsContinuous())
	assert.False(t, RemoveRange.IsContinuous())
	assert.False(t, UndoChange.IsContinuous())
	assert.Equal(t, "split-block", SplitBlock.String())
}
