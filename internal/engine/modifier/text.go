package modifier

import (
	"strings"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// InsertText inserts text at sel with the given style and entity. A
// non-collapsed selection is removed first, so InsertText and ReplaceText
// behave identically; both names are kept to mirror the edit intents.
func InsertText(c *content.Content, sel selection.Selection, text string, style content.StyleSet, entityKey string) (*content.Content, error) {
	return ReplaceText(c, sel, text, style, entityKey)
}

// ReplaceText replaces the selected range with text. The returned content
// records sel as its selection before and a caret after the inserted text
// as its selection after.
func ReplaceText(c *content.Content, sel selection.Selection, text string, style content.StyleSet, entityKey string) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	if err := checkEntity(c, entityKey); err != nil {
		return nil, err
	}
	runes, err := cleanText(text)
	if err != nil {
		return nil, err
	}

	target := c
	if !sel.IsCollapsed() {
		if target, err = RemoveRange(c, sel, Backward); err != nil {
			return nil, err
		}
	}
	key, offset := sel.StartKey(), sel.StartOffset()
	if !sel.IsCollapsed() {
		after := target.SelectionAfter()
		key, offset = after.AnchorKey(), after.AnchorOffset()
	}

	out, err := insertAt(target, key, offset, runes, style, entityKey)
	if err != nil {
		return nil, err
	}
	after := selection.Collapsed(key, offset+len(runes)).WithFocus(sel.HasFocus())
	return out.WithSelectionBefore(sel).WithSelectionAfter(after), nil
}

// cleanText drops carriage returns and rejects newlines, which can only
// enter the document through SplitBlock.
func cleanText(text string) ([]rune, error) {
	text = strings.ReplaceAll(text, "\r", "")
	if strings.ContainsRune(text, '\n') {
		return nil, ErrNewlineInText
	}
	return []rune(text), nil
}

// insertAt splices runes into block key at offset without touching the
// recorded selections.
func insertAt(c *content.Content, key string, offset int, runes []rune, style content.StyleSet, entityKey string) (*content.Content, error) {
	b, err := stripEntityAround(c, mustBlock(c, key), offset)
	if err != nil {
		return nil, err
	}
	if len(runes) == 0 {
		return c.ReplaceBlock(b)
	}

	meta := make([]content.CharMeta, len(runes))
	for i := range meta {
		meta[i] = content.CharMeta{Style: style, Entity: entityKey}
	}
	text := b.SliceRunes(0, offset)
	text = append(text, runes...)
	text = append(text, b.SliceRunes(offset, b.Len())...)
	chars := b.SliceChars(0, offset)
	chars = append(chars, meta...)
	chars = append(chars, b.SliceChars(offset, b.Len())...)

	nb, err := b.WithText(text, chars)
	if err != nil {
		return nil, err
	}
	return c.ReplaceBlock(nb)
}
