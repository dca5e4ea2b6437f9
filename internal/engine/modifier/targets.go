package modifier

import (
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// BackspaceRange returns the range a Backspace at sel removes: sel itself
// when it is not collapsed, otherwise the grapheme cluster before the caret
// or the block boundary before it. At the very start of the document the
// collapsed selection is returned unchanged.
func BackspaceRange(c *content.Content, sel selection.Selection) (selection.Selection, error) {
	if err := validate(c, sel); err != nil {
		return sel, err
	}
	if !sel.IsCollapsed() {
		return sel, nil
	}
	key, offset := sel.AnchorKey(), sel.AnchorOffset()
	b := mustBlock(c, key)
	if offset > 0 {
		return c.Select(key, offset, key, b.PrevGraphemeBoundary(offset)).WithFocus(sel.HasFocus()), nil
	}
	prev, ok := c.BlockBefore(key)
	if !ok {
		return sel, nil
	}
	return c.Select(key, 0, prev.Key(), prev.Len()).WithFocus(sel.HasFocus()), nil
}

// DeleteRange is BackspaceRange for forward deletion.
func DeleteRange(c *content.Content, sel selection.Selection) (selection.Selection, error) {
	if err := validate(c, sel); err != nil {
		return sel, err
	}
	if !sel.IsCollapsed() {
		return sel, nil
	}
	key, offset := sel.AnchorKey(), sel.AnchorOffset()
	b := mustBlock(c, key)
	if offset < b.Len() {
		return c.Select(key, offset, key, b.NextGraphemeBoundary(offset)).WithFocus(sel.HasFocus()), nil
	}
	next, ok := c.BlockAfter(key)
	if !ok {
		return sel, nil
	}
	return c.Select(key, offset, next.Key(), 0).WithFocus(sel.HasFocus()), nil
}

// EntityKeyForSelection returns the entity that text typed at sel should
// carry. Typing continues a mutable entity only when the caret is strictly
// inside it; typing over a range continues a mutable entity at its start.
func EntityKeyForSelection(c *content.Content, sel selection.Selection) string {
	b, ok := c.Block(sel.StartKey())
	if !ok {
		return ""
	}
	offset := sel.StartOffset()
	if sel.IsCollapsed() {
		if offset <= 0 || offset >= b.Len() {
			return ""
		}
		key := b.EntityAt(offset - 1)
		if key == "" || key != b.EntityAt(offset) {
			return ""
		}
		return mutableOnly(c, key)
	}
	if offset >= b.Len() {
		return ""
	}
	return mutableOnly(c, b.EntityAt(offset))
}

func mutableOnly(c *content.Content, key string) string {
	if key == "" {
		return ""
	}
	if e, ok := c.Entity(key); ok && e.Mutability == content.Mutable {
		return key
	}
	return ""
}

// InlineStyleForSelection returns the style that text typed at sel should
// carry: the style of the character before a caret, or of the first
// selected character. Empty blocks inherit from the nearest non-empty
// block above them.
func InlineStyleForSelection(c *content.Content, sel selection.Selection) content.StyleSet {
	b, ok := c.Block(sel.StartKey())
	if !ok {
		return content.StyleSet{}
	}
	offset := sel.StartOffset()
	switch {
	case sel.IsCollapsed() && offset > 0 && offset <= b.Len():
		return b.StyleAt(offset - 1)
	case !sel.IsCollapsed() && offset < b.Len():
		return b.StyleAt(offset)
	case b.Len() > 0:
		return b.StyleAt(0)
	}
	for i := c.IndexOf(b.Key()) - 1; i >= 0; i-- {
		if prev := c.BlockAt(i); prev.Len() > 0 {
			return prev.StyleAt(prev.Len() - 1)
		}
	}
	return content.StyleSet{}
}
