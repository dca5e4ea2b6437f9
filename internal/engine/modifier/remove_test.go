package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

func TestRemoveRangeCollapsedIsNoop(t *testing.T) {
	c := doc(t, "abc")
	out, err := RemoveRange(c, selection.Collapsed("a", 1), Backward)
	require.NoError(t, err)
	assert.Same(t, c, out)
}

func TestRemoveRangeInvalid(t *testing.T) {
	_, err := RemoveRange(doc(t, "abc"), selection.New("a", 1, "a", 9, false), Forward)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRemoveRangeAcrossBlocks(t *testing.T) {
	c := doc(t, "Hello", "World", "!")
	sel := selection.New("a", 2, "b", 3, false)

	out, err := RemoveRange(c, sel, Forward)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "Held", text(t, out, "a"))
	assert.Equal(t, "!", text(t, out, "c"))
	assert.Equal(t, selection.Collapsed("a", 2), out.SelectionAfter())
	assert.Equal(t, 3, c.Len(), "input must not change")
}

// Removing any single character inside an immutable entity removes the
// entity's whole range.
func TestRemoveRangeImmutable(t *testing.T) {
	for off := 5; off < 10; off++ {
		c, ek := withEntity(t, doc(t, "abcdeFGHIJxyz"), "a", 5, 10, content.Immutable)

		out, err := RemoveRange(c, selection.New("a", off, "a", off+1, false), Backward)
		require.NoError(t, err, "offset %d", off)
		assert.Equal(t, "abcdexyz", text(t, out, "a"), "offset %d", off)

		b, _ := out.Block("a")
		for i := range b.Len() {
			assert.NotEqual(t, ek, b.EntityAt(i))
		}
		assert.Equal(t, selection.Collapsed("a", 5), out.SelectionAfter())
	}
}

func TestRemoveRangeImmutableAtEdge(t *testing.T) {
	c, _ := withEntity(t, doc(t, "abcdeFGHIJxyz"), "a", 5, 10, content.Immutable)

	// a range ending exactly at the entity start leaves it intact
	out, err := RemoveRange(c, selection.New("a", 3, "a", 5, false), Backward)
	require.NoError(t, err)
	assert.Equal(t, "abcFGHIJxyz", text(t, out, "a"))
}

func TestRemoveRangeMutableShrinks(t *testing.T) {
	c, ek := withEntity(t, doc(t, "abcdeFGHIJxyz"), "a", 5, 10, content.Mutable)

	out, err := RemoveRange(c, selection.New("a", 7, "a", 8, false), Backward)
	require.NoError(t, err)
	assert.Equal(t, "abcdeFGIJxyz", text(t, out, "a"))

	b, _ := out.Block("a")
	r, ok := b.EntityRangeAt(5)
	require.True(t, ok)
	assert.Equal(t, content.EntityRange{Range: content.Range{Start: 5, End: 9}, Key: ek}, r)
}

func TestRemoveRangeSegmented(t *testing.T) {
	// "John Smith" spans [3,13)
	tests := []struct {
		name       string
		start, end int
		dir        Direction
		want       string
		entity     content.Range
	}{
		{"backspace in last segment", 11, 12, Backward, "ab John cd", content.Range{Start: 3, End: 7}},
		{"delete in first segment", 3, 4, Forward, "ab Smith cd", content.Range{Start: 3, End: 8}},
		{"covering both segments", 6, 9, Backward, "ab  cd", content.Range{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ek := withEntity(t, doc(t, "ab John Smith cd"), "a", 3, 13, content.Segmented)

			out, err := RemoveRange(c, selection.New("a", tt.start, "a", tt.end, false), tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text(t, out, "a"))

			b, _ := out.Block("a")
			ranges := b.EntityRanges()
			if tt.entity.Len() == 0 {
				assert.Empty(t, ranges)
				return
			}
			require.Len(t, ranges, 1)
			assert.Equal(t, ek, ranges[0].Key)
			assert.Equal(t, tt.entity, ranges[0].Range)
		})
	}
}

func TestSegmentRemovalRange(t *testing.T) {
	// entity "aa bb cc" at offset 10
	start, end := segmentRemovalRange(14, 15, "aa bb cc", 10, Backward)
	assert.Equal(t, 13, start)
	assert.Equal(t, 16, end)

	start, end = segmentRemovalRange(10, 18, "aa bb cc", 10, Forward)
	assert.Equal(t, 10, start)
	assert.Equal(t, 18, end)
}
