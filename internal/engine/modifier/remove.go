package modifier

import (
	"strings"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// RemoveRange deletes the selected text. A collapsed selection returns c
// unchanged. The range is first widened to honour immutable and segmented
// entities at its edges.
func RemoveRange(c *content.Content, sel selection.Selection, dir Direction) (*content.Content, error) {
	if err := validate(c, sel); err != nil {
		return nil, err
	}
	if sel.IsCollapsed() {
		return c, nil
	}
	startKey, endKey := sel.StartKey(), sel.EndKey()
	start, end := sel.StartOffset(), sel.EndOffset()

	startBlock := mustBlock(c, startKey)
	endBlock := mustBlock(c, endKey)

	if startKey == endKey {
		start, end = entityRemovalRange(c, startBlock, start, end, dir, true, true)
	} else {
		start, _ = entityRemovalRange(c, startBlock, start, startBlock.Len(), dir, true, false)
		_, end = entityRemovalRange(c, endBlock, 0, end, dir, false, true)
	}

	out, err := removeSpan(c, startKey, start, endKey, end)
	if err != nil {
		return nil, err
	}
	after := selection.Collapsed(startKey, start).WithFocus(sel.HasFocus())
	return out.WithSelectionBefore(sel).WithSelectionAfter(after), nil
}

// removeSpan joins startBlock[:start] with endBlock[end:] and drops every
// block in between. No entity adjustment is performed.
func removeSpan(c *content.Content, startKey string, start int, endKey string, end int) (*content.Content, error) {
	startBlock := mustBlock(c, startKey)
	endBlock := mustBlock(c, endKey)

	text := append(startBlock.SliceRunes(0, start), endBlock.SliceRunes(end, endBlock.Len())...)
	chars := append(startBlock.SliceChars(0, start), endBlock.SliceChars(end, endBlock.Len())...)
	joined, err := startBlock.WithText(text, chars)
	if err != nil {
		return nil, err
	}

	si, ei := c.IndexOf(startKey), c.IndexOf(endKey)
	blocks := c.Blocks()
	next := make([]*content.Block, 0, len(blocks)-(ei-si))
	next = append(next, blocks[:si]...)
	next = append(next, joined)
	next = append(next, blocks[ei+1:]...)
	return c.WithBlocks(next)
}

// entityRemovalRange widens [start, end) within block b so that removing
// it honours entity mutability. checkStart/checkEnd select which edges of
// the range lie inside this block.
func entityRemovalRange(c *content.Content, b *content.Block, start, end int, dir Direction, checkStart, checkEnd bool) (int, int) {
	if start >= end {
		return start, end
	}
	selStart, selEnd := start, end
	widen := func(offset int) {
		run, ok := b.EntityRangeAt(offset)
		if !ok {
			return
		}
		ent, ok := c.Entity(run.Key)
		if !ok {
			return
		}
		switch ent.Mutability {
		case content.Immutable:
			start = min(start, run.Start)
			end = max(end, run.End)
		case content.Segmented:
			text := string(b.SliceRunes(run.Start, run.End))
			rs, re := segmentRemovalRange(max(selStart, run.Start), min(selEnd, run.End), text, run.Start, dir)
			start = min(start, rs)
			end = max(end, re)
		}
	}
	if checkStart {
		widen(selStart)
	}
	if checkEnd {
		widen(selEnd - 1)
	}
	return start, end
}

// segmentRemovalRange returns the range of space-delimited segments of a
// segmented entity touched by [selStart, selEnd). text is the entity text
// and entityStart its offset in the block. When the removal reaches exactly
// one end of the entity, one adjacent delimiter is removed as well so that
// no dangling space remains.
func segmentRemovalRange(selStart, selEnd int, text string, entityStart int, dir Direction) (int, int) {
	parts := strings.Split(text, " ")
	segments := make([]int, len(parts))
	for i, p := range parts {
		n := len([]rune(p))
		if dir == Forward {
			if i > 0 {
				n++
			}
		} else if i < len(parts)-1 {
			n++
		}
		segments[i] = n
	}

	removalStart, removalEnd := -1, -1
	segStart := entityStart
	for _, n := range segments {
		segEnd := segStart + n
		if selStart < segEnd && segStart < selEnd {
			if removalStart < 0 {
				removalStart = segStart
			}
			removalEnd = segEnd
		} else if removalStart >= 0 {
			break
		}
		segStart = segEnd
	}
	if removalStart < 0 {
		return selStart, selEnd
	}

	entityEnd := entityStart + len([]rune(text))
	atStart := removalStart == entityStart
	atEnd := removalEnd == entityEnd
	if atStart != atEnd {
		if dir == Forward {
			if removalEnd != entityEnd {
				removalEnd++
			}
		} else if removalStart != entityStart {
			removalStart--
		}
	}
	return removalStart, removalEnd
}

// stripEntityAround removes a non-mutable entity from its whole run when
// offset lies strictly inside the run. Inserting at such an offset would
// otherwise leave the entity describing text it no longer matches.
func stripEntityAround(c *content.Content, b *content.Block, offset int) (*content.Block, error) {
	if offset <= 0 || offset >= b.Len() {
		return b, nil
	}
	before, after := b.EntityAt(offset-1), b.EntityAt(offset)
	if before == "" || before != after {
		return b, nil
	}
	ent, ok := c.Entity(before)
	if !ok || ent.Mutability == content.Mutable {
		return b, nil
	}
	run, _ := b.EntityRangeAt(offset)
	chars := b.Chars()
	for i := run.Start; i < run.End; i++ {
		chars[i].Entity = ""
	}
	return b.WithText(b.Runes(), chars)
}
