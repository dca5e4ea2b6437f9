package modifier

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// Fragment is a detached run of blocks, as produced by copy or drag.
// Entity keys in a fragment refer to the entity table of the content it
// was taken from.
type Fragment struct {
	blocks []*content.Block
}

// NewFragment wraps blocks as a fragment.
func NewFragment(blocks ...*content.Block) Fragment {
	return Fragment{blocks: append([]*content.Block(nil), blocks...)}
}

// Blocks returns the fragment blocks.
func (f Fragment) Blocks() []*content.Block {
	return append([]*content.Block(nil), f.blocks...)
}

// Len returns the number of blocks in the fragment.
func (f Fragment) Len() int { return len(f.blocks) }

// Text returns the fragment text with blocks joined by newlines.
func (f Fragment) Text() string {
	var s []rune
	for i, b := range f.blocks {
		if i > 0 {
			s = append(s, '\n')
		}
		s = append(s, b.Runes()...)
	}
	return string(s)
}

// ExtractFragment copies the selected range out of c. Non-mutable entities
// cut by the selection edges are dropped from the copied characters.
func ExtractFragment(c *content.Content, sel selection.Selection) (Fragment, error) {
	if err := validate(c, sel); err != nil {
		return Fragment{}, err
	}
	stripped := c
	for _, p := range []selection.Point{sel.Start(), sel.End()} {
		b, err := stripEntityAround(stripped, mustBlock(stripped, p.Key), p.Offset)
		if err != nil {
			return Fragment{}, err
		}
		if stripped, err = stripped.ReplaceBlock(b); err != nil {
			return Fragment{}, err
		}
	}

	first, last := c.IndexOf(sel.StartKey()), c.IndexOf(sel.EndKey())
	out := make([]*content.Block, 0, last-first+1)
	for i := first; i <= last; i++ {
		b := stripped.BlockAt(i)
		start, end := 0, b.Len()
		if i == first {
			start = sel.StartOffset()
		}
		if i == last {
			end = sel.EndOffset()
		}
		nb, err := b.WithText(b.SliceRunes(start, end), b.SliceChars(start, end))
		if err != nil {
			return Fragment{}, err
		}
		out = append(out, nb)
	}
	return Fragment{blocks: out}, nil
}

// InsertFragment pastes f at sel, removing a non-collapsed selection first.
// The first fragment block merges into the target block and the last one
// absorbs the text after the caret. When the target block is empty it
// takes the first fragment block's type and data.
func InsertFragment(c *content.Content, sel selection.Selection, f Fragment) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	if f.Len() == 0 {
		return c, nil
	}
	for _, b := range f.blocks {
		for _, r := range b.EntityRanges() {
			if err := checkEntity(c, r.Key); err != nil {
				return nil, err
			}
		}
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

	out, afterKey, afterOffset, err := spliceFragment(target, b, offset, f)
	if err != nil {
		return nil, err
	}
	after := selection.Collapsed(afterKey, afterOffset).WithFocus(sel.HasFocus())
	return out.WithSelectionBefore(sel).WithSelectionAfter(after), nil
}

func spliceFragment(c *content.Content, b *content.Block, offset int, f Fragment) (*content.Content, string, int, error) {
	head := f.blocks[0]
	headRunes := append(b.SliceRunes(0, offset), head.Runes()...)
	headChars := append(b.SliceChars(0, offset), head.Chars()...)
	tailRunes := b.SliceRunes(offset, b.Len())
	tailChars := b.SliceChars(offset, b.Len())

	first := b
	if b.Len() == 0 {
		first = b.WithType(head.Type()).WithData(head.Data())
	}

	if f.Len() == 1 {
		merged, err := first.WithText(append(headRunes, tailRunes...), append(headChars, tailChars...))
		if err != nil {
			return nil, "", 0, err
		}
		out, err := c.ReplaceBlock(merged)
		return out, b.Key(), len(headRunes), err
	}

	merged, err := first.WithText(headRunes, headChars)
	if err != nil {
		return nil, "", 0, err
	}
	used := map[string]struct{}{}
	freshKey := func() string {
		for {
			k := c.NewKey()
			if _, dup := used[k]; !dup {
				used[k] = struct{}{}
				return k
			}
		}
	}

	inserted := []*content.Block{merged}
	for _, fb := range f.blocks[1 : f.Len()-1] {
		inserted = append(inserted, fb.WithKey(freshKey()))
	}
	last := f.blocks[f.Len()-1]
	tailKey := freshKey()
	tail, err := last.WithKey(tailKey).WithText(append(last.Runes(), tailRunes...), append(last.Chars(), tailChars...))
	if err != nil {
		return nil, "", 0, err
	}
	inserted = append(inserted, tail)

	i := c.IndexOf(b.Key())
	blocks := c.Blocks()
	next := make([]*content.Block, 0, len(blocks)+len(inserted)-1)
	next = append(next, blocks[:i]...)
	next = append(next, inserted...)
	next = append(next, blocks[i+1:]...)
	out, err := c.WithBlocks(next)
	return out, tailKey, last.Len(), err
}

// MoveText moves the text selected by from to the caret at to. The target
// must lie outside the moved range.
func MoveText(c *content.Content, from selection.Selection, to selection.Selection) (*content.Content, error) {
	if err := validate(c, from); err != nil {
		return nil, err
	}
	if err := validate(c, to); err != nil {
		return nil, err
	}
	if from.IsCollapsed() {
		return c, nil
	}
	f, err := ExtractFragment(c, from)
	if err != nil {
		return nil, err
	}
	dropKey, dropOffset, err := remapAfterRemoval(c, from, to.StartKey(), to.StartOffset())
	if err != nil {
		return nil, err
	}
	removed, err := removeSpan(c, from.StartKey(), from.StartOffset(), from.EndKey(), from.EndOffset())
	if err != nil {
		return nil, err
	}
	out, err := InsertFragment(removed, selection.Collapsed(dropKey, dropOffset), f)
	if err != nil {
		return nil, err
	}
	return out.WithSelectionBefore(from), nil
}

// remapAfterRemoval translates a point of c into the content obtained by
// removing removed from it.
func remapAfterRemoval(c *content.Content, removed selection.Selection, key string, offset int) (string, int, error) {
	si, ei, pi := c.IndexOf(removed.StartKey()), c.IndexOf(removed.EndKey()), c.IndexOf(key)
	inside := fmt.Errorf("%w: drop target %s:%d inside moved range", ErrInvalidRange, key, offset)
	switch {
	case pi < si || pi > ei:
		return key, offset, nil
	case pi == si && offset <= removed.StartOffset():
		return key, offset, nil
	case pi == ei && offset >= removed.EndOffset():
		return removed.StartKey(), removed.StartOffset() + offset - removed.EndOffset(), nil
	}
	return "", 0, inside
}
