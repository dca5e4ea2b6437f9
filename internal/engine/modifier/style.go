package modifier

import (
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// ApplyInlineStyle adds the named style to every character in sel.
func ApplyInlineStyle(c *content.Content, sel selection.Selection, name string) (*content.Content, error) {
	return mapChars(c, sel, func(m content.CharMeta) content.CharMeta {
		m.Style = m.Style.Add(name)
		return m
	})
}

// RemoveInlineStyle removes the named style from every character in sel.
func RemoveInlineStyle(c *content.Content, sel selection.Selection, name string) (*content.Content, error) {
	return mapChars(c, sel, func(m content.CharMeta) content.CharMeta {
		m.Style = m.Style.Remove(name)
		return m
	})
}

// ApplyEntity sets the entity of every character in sel. An empty key
// clears entities. Non-mutable entities cut by either edge of sel are
// first removed from their whole run.
func ApplyEntity(c *content.Content, sel selection.Selection, entityKey string) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	if err := checkEntity(c, entityKey); err != nil {
		return nil, err
	}
	stripped := c
	for _, p := range []selection.Point{sel.Start(), sel.End()} {
		b, err := stripEntityAround(stripped, mustBlock(stripped, p.Key), p.Offset)
		if err != nil {
			return nil, err
		}
		if stripped, err = stripped.ReplaceBlock(b); err != nil {
			return nil, err
		}
	}
	return mapChars(stripped, sel, func(m content.CharMeta) content.CharMeta {
		m.Entity = entityKey
		return m
	})
}

// mapChars rewrites the metadata of each character covered by sel.
func mapChars(c *content.Content, sel selection.Selection, fn func(content.CharMeta) content.CharMeta) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	blocks := c.Blocks()
	first, last := c.IndexOf(sel.StartKey()), c.IndexOf(sel.EndKey())
	for i := first; i <= last; i++ {
		b := blocks[i]
		start, end := 0, b.Len()
		if i == first {
			start = sel.StartOffset()
		}
		if i == last {
			end = sel.EndOffset()
		}
		if start >= end {
			continue
		}
		chars := b.Chars()
		for j := start; j < end; j++ {
			chars[j] = fn(chars[j])
		}
		nb, err := b.WithText(b.Runes(), chars)
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
