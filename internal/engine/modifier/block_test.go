package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

func TestSplitBlock(t *testing.T) {
	b, err := content.NewBlock("a", content.HeaderTwo, "Hello world", nil, 1, map[string]any{"id": "x"})
	require.NoError(t, err)
	c, err := content.New([]*content.Block{b, content.NewTextBlock("z", "tail")}, content.EntityMap{})
	require.NoError(t, err)

	out, err := SplitBlock(c, selection.Collapsed("a", 5))
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())

	upper, lower := out.BlockAt(0), out.BlockAt(1)
	assert.Equal(t, "a", upper.Key())
	assert.Equal(t, "Hello", upper.Text())
	assert.Equal(t, "x", upper.Data()["id"])
	assert.Equal(t, " world", lower.Text())
	assert.NotEqual(t, "a", lower.Key())
	assert.Equal(t, content.HeaderTwo, lower.Type())
	assert.Equal(t, 1, lower.Depth())
	assert.Empty(t, lower.Data())
	assert.Equal(t, "z", out.BlockAt(2).Key())
	assert.Equal(t, selection.Collapsed(lower.Key(), 0), out.SelectionAfter())
}

func TestSplitBlockRemovesRangeFirst(t *testing.T) {
	c := doc(t, "Hello world")
	out, err := SplitBlock(c, selection.New("a", 2, "a", 8, false))
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "He", out.BlockAt(0).Text())
	assert.Equal(t, "rld", out.BlockAt(1).Text())
}

func TestMergeBlocks(t *testing.T) {
	c := doc(t, "Hello", " world", "!")
	out, err := MergeBlocks(c, "a")
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "Hello world", text(t, out, "a"))
	assert.Equal(t, selection.Collapsed("a", 5), out.SelectionAfter())

	_, err = MergeBlocks(c, "c")
	assert.ErrorIs(t, err, ErrNoAdjacentBlock)
	_, err = MergeBlocks(c, "nope")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSplitThenMergeRestoresText(t *testing.T) {
	c := doc(t, "Hello world")
	split, err := SplitBlock(c, selection.Collapsed("a", 3))
	require.NoError(t, err)
	merged, err := MergeBlocks(split, "a")
	require.NoError(t, err)
	require.Equal(t, 1, merged.Len())
	assert.True(t, c.First().Equal(merged.First()))
}

func TestSetBlockType(t *testing.T) {
	c := doc(t, "one", "two", "three")
	out, err := SetBlockType(c, c.Select("b", 1, "a", 0), content.UnorderedListItem)
	require.NoError(t, err)
	assert.Equal(t, content.UnorderedListItem, out.BlockAt(0).Type())
	assert.Equal(t, content.UnorderedListItem, out.BlockAt(1).Type())
	assert.Equal(t, content.Unstyled, out.BlockAt(2).Type())
}

func TestAdjustDepthClamps(t *testing.T) {
	c := doc(t, "one", "two")
	sel := selection.New("a", 0, "b", 0, false)

	out, err := AdjustDepth(c, sel, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, out.BlockAt(0).Depth())
	assert.Equal(t, 2, out.BlockAt(1).Depth())

	out, err = AdjustDepth(out, sel, -5, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, out.BlockAt(0).Depth())
}

func TestSetBlockData(t *testing.T) {
	c := doc(t, "one")
	out, err := SetBlockData(c, selection.Collapsed("a", 0), map[string]any{"align": "center"})
	require.NoError(t, err)
	assert.Equal(t, "center", out.First().Data()["align"])
	assert.Empty(t, c.First().Data())
}
