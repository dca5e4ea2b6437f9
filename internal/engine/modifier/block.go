package modifier

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// SplitBlock splits the block at the caret into two blocks. The upper half
// keeps the original key; the lower half gets a fresh key, the same type
// and depth, and no block data. A non-collapsed selection is removed first.
func SplitBlock(c *content.Content, sel selection.Selection) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	target := c
	key, offset := sel.StartKey(), sel.StartOffset()
	if !sel.IsCollapsed() {
		var err error
		if target, err = RemoveRange(c, sel, Backward); err != nil {
			return nil, err
		}
		key, offset = target.SelectionAfter().AnchorKey(), target.SelectionAfter().AnchorOffset()
	}

	b, err := stripEntityAround(target, mustBlock(target, key), offset)
	if err != nil {
		return nil, err
	}
	upper, err := b.WithText(b.SliceRunes(0, offset), b.SliceChars(0, offset))
	if err != nil {
		return nil, err
	}
	belowKey := target.NewKey()
	lower, err := b.WithKey(belowKey).WithData(nil).WithText(b.SliceRunes(offset, b.Len()), b.SliceChars(offset, b.Len()))
	if err != nil {
		return nil, err
	}

	i := target.IndexOf(key)
	blocks := target.Blocks()
	next := make([]*content.Block, 0, len(blocks)+1)
	next = append(next, blocks[:i]...)
	next = append(next, upper, lower)
	next = append(next, blocks[i+1:]...)
	out, err := target.WithBlocks(next)
	if err != nil {
		return nil, err
	}
	after := selection.Collapsed(belowKey, 0).WithFocus(sel.HasFocus())
	return out.WithSelectionBefore(sel).WithSelectionAfter(after), nil
}

// MergeBlocks joins the block with the given key and the block after it.
// The merged block keeps the first block's key, type, depth and data.
func MergeBlocks(c *content.Content, key string) (*content.Content, error) {
	b, ok := c.Block(key)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidRange, selection.ErrUnknownBlock, key)
	}
	next, ok := c.BlockAfter(key)
	if !ok {
		return nil, fmt.Errorf("%w: after %q", ErrNoAdjacentBlock, key)
	}
	out, err := removeSpan(c, key, b.Len(), next.Key(), 0)
	if err != nil {
		return nil, err
	}
	before := c.Select(next.Key(), 0, key, b.Len())
	return out.WithSelectionBefore(before).WithSelectionAfter(selection.Collapsed(key, b.Len())), nil
}

// SetBlockType sets the type of every block touched by sel.
func SetBlockType(c *content.Content, sel selection.Selection, typ content.BlockType) (*content.Content, error) {
	return mapBlocks(c, sel, func(b *content.Block) (*content.Block, error) {
		return b.WithType(typ), nil
	})
}

// AdjustDepth adds delta to the depth of every block touched by sel,
// clamping the result to [0, maxDepth].
func AdjustDepth(c *content.Content, sel selection.Selection, delta, maxDepth int) (*content.Content, error) {
	return mapBlocks(c, sel, func(b *content.Block) (*content.Block, error) {
		return b.WithDepth(max(0, min(b.Depth()+delta, maxDepth)))
	})
}

// SetBlockData replaces the data map of every block touched by sel.
func SetBlockData(c *content.Content, sel selection.Selection, data map[string]any) (*content.Content, error) {
	return mapBlocks(c, sel, func(b *content.Block) (*content.Block, error) {
		return b.WithData(data), nil
	})
}

// mapBlocks applies fn to each block from sel's start block to its end
// block inclusive. The selection is recorded unchanged before and after.
func mapBlocks(c *content.Content, sel selection.Selection, fn func(*content.Block) (*content.Block, error)) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	blocks := c.Blocks()
	for i := c.IndexOf(sel.StartKey()); i <= c.IndexOf(sel.EndKey()); i++ {
		nb, err := fn(blocks[i])
		if err != nil {
			return nil, err
		}
		blocks[i] = nb
	}
	out, err := c.WithBlocks(blocks)
	if err != nil {
		return nil, err
	}
	return out.WithSelectionBefore(sel).WithSelectionAfter(sel), nil
}
