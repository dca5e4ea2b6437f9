package modifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// doc builds content with blocks keyed "a", "b", "c", ...
func doc(t *testing.T, texts ...string) *content.Content {
	t.Helper()
	blocks := make([]*content.Block, len(texts))
	for i, text := range texts {
		blocks[i] = content.NewTextBlock(string(rune('a'+i)), text)
	}
	c, err := content.New(blocks, content.EntityMap{})
	require.NoError(t, err)
	return c
}

// withEntity attaches a new entity to [start, end) of block key.
func withEntity(t *testing.T, c *content.Content, key string, start, end int, m content.Mutability) (*content.Content, string) {
	t.Helper()
	c, ek := c.AddEntity(content.Entity{Type: "TOKEN", Mutability: m})
	c, err := ApplyEntity(c, selection.New(key, start, key, end, false), ek)
	require.NoError(t, err)
	return c, ek
}

func text(t *testing.T, c *content.Content, key string) string {
	t.Helper()
	b, ok := c.Block(key)
	require.True(t, ok, "block %q", key)
	return b.Text()
}

func entityAt(t *testing.T, c *content.Content, key string, offset int) string {
	t.Helper()
	b, ok := c.Block(key)
	require.True(t, ok, "block %q", key)
	return b.EntityAt(offset)
}
