package content

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/dshills/inkwell/internal/engine/selection"
)

// Content is the whole document: ordered blocks plus the entity table.
// It also records the selections before and after the edit that produced
// it, which the history uses to restore the caret on undo/redo.
//
// Content is immutable and safe to share.
type Content struct {
	blocks   []*Block
	index    map[string]int
	entities EntityMap

	selectionBefore selection.Selection
	selectionAfter  selection.Selection
}

// New creates content from blocks. An empty block list yields a single
// empty unstyled block.
func New(blocks []*Block, entities EntityMap) (*Content, error) {
	if len(blocks) == 0 {
		blocks = []*Block{NewTextBlock(GenerateKey(), "")}
	}
	c := &Content{entities: entities}
	if err := c.setBlocks(blocks); err != nil {
		return nil, err
	}
	sel := selection.Empty(c.blocks[0].key)
	c.selectionBefore = sel
	c.selectionAfter = sel
	return c, nil
}

// FromText creates content with one unstyled block per line.
func FromText(text string) *Content {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	blocks := make([]*Block, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		key := GenerateKey()
		for {
			if _, dup := seen[key]; !dup {
				break
			}
			key = GenerateKey()
		}
		seen[key] = struct{}{}
		blocks[i] = NewTextBlock(key, line)
	}
	c, err := New(blocks, EntityMap{})
	if err != nil {
		// keys are unique and plain blocks are always valid
		panic(err)
	}
	return c
}

// Empty returns content with a single empty block.
func Empty() *Content {
	return FromText("")
}

func (c *Content) setBlocks(blocks []*Block) error {
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if _, dup := index[b.key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, b.key)
		}
		index[b.key] = i
	}
	c.blocks = blocks
	c.index = index
	return nil
}

// Blocks returns the blocks in document order.
// The slice is a copy; the blocks are shared.
func (c *Content) Blocks() []*Block {
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Len returns the number of blocks.
func (c *Content) Len() int { return len(c.blocks) }

// Block returns the block with the given key.
func (c *Content) Block(key string) (*Block, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.blocks[i], true
}

// BlockAt returns the block at position i in document order.
func (c *Content) BlockAt(i int) *Block { return c.blocks[i] }

// IndexOf returns the document position of key, or -1.
func (c *Content) IndexOf(key string) int {
	i, ok := c.index[key]
	if !ok {
		return -1
	}
	return i
}

// First returns the first block.
func (c *Content) First() *Block { return c.blocks[0] }

// Last returns the last block.
func (c *Content) Last() *Block { return c.blocks[len(c.blocks)-1] }

// BlockBefore returns the block preceding key.
func (c *Content) BlockBefore(key string) (*Block, bool) {
	i, ok := c.index[key]
	if !ok || i == 0 {
		return nil, false
	}
	return c.blocks[i-1], true
}

// BlockAfter returns the block following key.
func (c *Content) BlockAfter(key string) (*Block, bool) {
	i, ok := c.index[key]
	if !ok || i == len(c.blocks)-1 {
		return nil, false
	}
	return c.blocks[i+1], true
}

// Entities returns the entity table.
func (c *Content) Entities() EntityMap { return c.entities }

// Entity returns the entity for key.
func (c *Content) Entity(key string) (Entity, bool) { return c.entities.Get(key) }

// SelectionBefore returns the selection recorded before the producing edit.
func (c *Content) SelectionBefore() selection.Selection { return c.selectionBefore }

// SelectionAfter returns the selection recorded after the producing edit.
func (c *Content) SelectionAfter() selection.Selection { return c.selectionAfter }

// PlainText joins block texts with newlines.
func (c *Content) PlainText() string {
	var sb strings.Builder
	for i, b := range c.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(b.text))
	}
	return sb.String()
}

// HasText reports whether the document contains any non-empty block.
func (c *Content) HasText() bool {
	if len(c.blocks) > 1 {
		return true
	}
	return len(c.blocks[0].text) > 0
}

func (c *Content) clone() *Content {
	nc := *c
	return &nc
}

// WithBlocks returns content with a new block list, keeping entities and
// recorded selections.
func (c *Content) WithBlocks(blocks []*Block) (*Content, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("content must contain at least one block")
	}
	nc := c.clone()
	if err := nc.setBlocks(blocks); err != nil {
		return nil, err
	}
	return nc, nil
}

// ReplaceBlock returns content with the block of the same key replaced.
func (c *Content) ReplaceBlock(b *Block) (*Content, error) {
	i, ok := c.index[b.key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", selection.ErrUnknownBlock, b.key)
	}
	blocks := c.Blocks()
	blocks[i] = b
	nc := c.clone()
	nc.blocks = blocks
	return nc, nil
}

// WithEntities returns content with a different entity table.
func (c *Content) WithEntities(m EntityMap) *Content {
	nc := c.clone()
	nc.entities = m
	return nc
}

// AddEntity appends e to the entity table and returns the new content and
// the allocated key.
func (c *Content) AddEntity(e Entity) (*Content, string) {
	m, key := c.entities.Add(e)
	return c.WithEntities(m), key
}

// WithSelectionBefore returns content recording sel as the selection
// before its producing edit.
func (c *Content) WithSelectionBefore(sel selection.Selection) *Content {
	nc := c.clone()
	nc.selectionBefore = sel
	return nc
}

// WithSelectionAfter returns content recording sel as the selection after
// its producing edit.
func (c *Content) WithSelectionAfter(sel selection.Selection) *Content {
	nc := c.clone()
	nc.selectionAfter = sel
	return nc
}

// Select builds a selection deriving the backward flag from block order.
func (c *Content) Select(anchorKey string, anchorOffset int, focusKey string, focusOffset int) selection.Selection {
	backward := false
	if anchorKey == focusKey {
		backward = focusOffset < anchorOffset
	} else {
		backward = c.IndexOf(focusKey) < c.IndexOf(anchorKey)
	}
	return selection.New(anchorKey, anchorOffset, focusKey, focusOffset, backward)
}

// ValidateSelection checks that both selection points reference existing
// blocks with in-bounds offsets and that the direction flag is consistent.
func (c *Content) ValidateSelection(sel selection.Selection) error {
	for _, p := range []selection.Point{sel.Anchor(), sel.Focus()} {
		b, ok := c.Block(p.Key)
		if !ok {
			return fmt.Errorf("%w: %q", selection.ErrUnknownBlock, p.Key)
		}
		if p.Offset < 0 || p.Offset > len(b.text) {
			return fmt.Errorf("%w: %s offset %d (len %d)", selection.ErrOffsetOutOfRange, p.Key, p.Offset, len(b.text))
		}
	}
	oriented := c.Select(sel.AnchorKey(), sel.AnchorOffset(), sel.FocusKey(), sel.FocusOffset())
	if oriented.IsBackward() != sel.IsBackward() {
		return fmt.Errorf("%w: %s", selection.ErrInconsistentDirection, sel)
	}
	return nil
}

// Validate checks every structural invariant. A missing entity reference
// is reported as ErrEntityMissing with a stack trace attached.
func (c *Content) Validate() error {
	if len(c.blocks) == 0 {
		return fmt.Errorf("content has no blocks")
	}
	for i, b := range c.blocks {
		if c.index[b.key] != i {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, b.key)
		}
		if len(b.text) != len(b.chars) {
			return fmt.Errorf("block %q: %w", b.key, ErrAnnotationLength)
		}
		for off, ch := range b.chars {
			if ch.Entity != "" && !c.entities.Has(ch.Entity) {
				return pkgerrors.Wrapf(ErrEntityMissing, "block %q offset %d references entity %q", b.key, off, ch.Entity)
			}
		}
	}
	return nil
}

// MustValidate panics when Validate fails. It is the assertion used after
// edit composition, where a failure can only be a programming error.
func (c *Content) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("content corruption: %+v", err))
	}
}

// Equal reports whether two documents have the same blocks (including
// keys) and entities.
func (c *Content) Equal(o *Content) bool {
	if c == o {
		return true
	}
	if len(c.blocks) != len(o.blocks) || c.entities.Len() != o.entities.Len() {
		return false
	}
	for i := range c.blocks {
		if !c.blocks[i].Equal(o.blocks[i]) {
			return false
		}
	}
	for _, k := range c.entities.Keys() {
		a, _ := c.entities.Get(k)
		b, ok := o.entities.Get(k)
		if !ok || a.Type != b.Type || a.Mutability != b.Mutability || !dataEqual(a.Data, b.Data) {
			return false
		}
	}
	return true
}
