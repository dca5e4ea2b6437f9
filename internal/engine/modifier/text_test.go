package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

func TestInsertTextAtCaret(t *testing.T) {
	c := doc(t, "Hello world")
	sel := selection.Collapsed("a", 5)

	out, err := InsertText(c, sel, " there", content.StyleSet{}, "")
	require.NoError(t, err)

	assert.Equal(t, "Hello there world", text(t, out, "a"))
	assert.Equal(t, selection.Collapsed("a", 11), out.SelectionAfter())
	assert.Equal(t, sel, out.SelectionBefore())
	assert.Equal(t, "Hello world", text(t, c, "a"), "input must not change")
}

func TestInsertTextStyleAndEntity(t *testing.T) {
	c := doc(t, "ab")
	c, ek := c.AddEntity(content.Entity{Type: "LINK", Mutability: content.Mutable})
	bold := content.NewStyleSet("BOLD")

	out, err := InsertText(c, selection.Collapsed("a", 1), "XY", bold, ek)
	require.NoError(t, err)

	b, _ := out.Block("a")
	assert.Equal(t, "aXYb", b.Text())
	assert.Equal(t, content.CharMeta{}, b.CharAt(0))
	assert.Equal(t, content.CharMeta{Style: bold, Entity: ek}, b.CharAt(1))
	assert.Equal(t, content.CharMeta{Style: bold, Entity: ek}, b.CharAt(2))
	assert.Equal(t, content.CharMeta{}, b.CharAt(3))
}

func TestInsertTextRejects(t *testing.T) {
	c := doc(t, "abc")

	_, err := InsertText(c, selection.Collapsed("a", 1), "x\ny", content.StyleSet{}, "")
	assert.ErrorIs(t, err, ErrNewlineInText)

	_, err = InsertText(c, selection.Collapsed("zz", 0), "x", content.StyleSet{}, "")
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, err, selection.ErrUnknownBlock)

	_, err = InsertText(c, selection.Collapsed("a", 4), "x", content.StyleSet{}, "")
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, err, selection.ErrOffsetOutOfRange)

	_, err = InsertText(c, selection.Collapsed("a", 0), "x", content.StyleSet{}, "42")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestInsertTextDropsCarriageReturn(t *testing.T) {
	out, err := InsertText(doc(t, ""), selection.Collapsed("a", 0), "a\rb", content.StyleSet{}, "")
	require.NoError(t, err)
	assert.Equal(t, "ab", text(t, out, "a"))
	assert.Equal(t, 2, out.SelectionAfter().FocusOffset())
}

func TestReplaceTextRange(t *testing.T) {
	c := doc(t, "Hello world")
	sel := selection.New("a", 6, "a", 11, false)

	out, err := ReplaceText(c, sel, "there", content.StyleSet{}, "")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text(t, out, "a"))
	assert.Equal(t, selection.Collapsed("a", 11), out.SelectionAfter())
}

func TestReplaceTextAcrossBlocks(t *testing.T) {
	c := doc(t, "Hello", "big", "world")
	sel := c.Select("c", 2, "a", 2)

	out, err := ReplaceText(c, sel, "--", content.StyleSet{}, "")
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "He--rld", text(t, out, "a"))
	assert.Equal(t, selection.Collapsed("a", 4), out.SelectionAfter())
}

func TestInsertInsideImmutableStripsEntity(t *testing.T) {
	c, ek := withEntity(t, doc(t, "say @alice now"), "a", 4, 10, content.Immutable)
	require.Equal(t, ek, entityAt(t, c, "a", 5))

	out, err := InsertText(c, selection.Collapsed("a", 6), "x", content.StyleSet{}, "")
	require.NoError(t, err)
	assert.Equal(t, "say @axlice now", text(t, out, "a"))
	for i := range 15 {
		assert.Empty(t, entityAt(t, out, "a", i), "offset %d", i)
	}
}

func TestInsertInsideMutableKeepsEntity(t *testing.T) {
	c, ek := withEntity(t, doc(t, "a link here"), "a", 2, 6, content.Mutable)

	out, err := InsertText(c, selection.Collapsed("a", 4), "n", content.StyleSet{}, ek)
	require.NoError(t, err)
	assert.Equal(t, "a linnk here", text(t, out, "a"))
	for i := 2; i < 7; i++ {
		assert.Equal(t, ek, entityAt(t, out, "a", i))
	}
}

func TestInsertAtImmutableEdgeKeepsEntity(t *testing.T) {
	c, ek := withEntity(t, doc(t, "say @alice now"), "a", 4, 10, content.Immutable)

	out, err := InsertText(c, selection.Collapsed("a", 10), "!", content.StyleSet{}, "")
	require.NoError(t, err)
	assert.Equal(t, ek, entityAt(t, out, "a", 9))
	assert.Empty(t, entityAt(t, out, "a", 10))
}
