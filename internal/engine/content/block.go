package content

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// BlockType is the semantic tag of a block.
type BlockType string

// Block types understood by the editor core.
const (
	Unstyled          BlockType = "unstyled"
	Paragraph         BlockType = "paragraph"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	HeaderFour        BlockType = "header-four"
	HeaderFive        BlockType = "header-five"
	HeaderSix         BlockType = "header-six"
	UnorderedListItem BlockType = "unordered-list-item"
	OrderedListItem   BlockType = "ordered-list-item"
	Blockquote        BlockType = "blockquote"
	CodeBlock         BlockType = "code-block"
	Atomic            BlockType = "atomic"
)

var knownBlockTypes = map[BlockType]struct{}{
	Unstyled: {}, Paragraph: {}, HeaderOne: {}, HeaderTwo: {}, HeaderThree: {},
	HeaderFour: {}, HeaderFive: {}, HeaderSix: {}, UnorderedListItem: {},
	OrderedListItem: {}, Blockquote: {}, CodeBlock: {}, Atomic: {},
}

// IsKnown reports whether t is one of the closed set of block types.
func (t BlockType) IsKnown() bool {
	_, ok := knownBlockTypes[t]
	return ok
}

// IsListItem reports whether t is a list item variant.
func (t BlockType) IsListItem() bool {
	return t == UnorderedListItem || t == OrderedListItem
}

// CharMeta is the style and entity annotation of one character.
// Entity is "" when the character carries no entity.
type CharMeta struct {
	Style  StyleSet
	Entity string
}

// Block is one paragraph-equivalent unit of the document.
// Block is immutable; the With* methods return modified copies.
type Block struct {
	key   string
	typ   BlockType
	text  []rune
	chars []CharMeta
	depth int
	data  map[string]any
}

// NewBlock creates a block, copying text, chars and data.
// chars may be nil, in which case every character gets empty metadata.
func NewBlock(key string, typ BlockType, text string, chars []CharMeta, depth int, data map[string]any) (*Block, error) {
	runes := []rune(text)
	if chars == nil {
		chars = make([]CharMeta, len(runes))
	} else {
		chars = slices.Clone(chars)
	}
	return newBlock(key, typ, runes, chars, depth, maps.Clone(data))
}

// NewTextBlock creates an unstyled block with plain text.
func NewTextBlock(key, text string) *Block {
	runes := []rune(text)
	return &Block{key: key, typ: Unstyled, text: runes, chars: make([]CharMeta, len(runes))}
}

// newBlock takes ownership of its arguments.
func newBlock(key string, typ BlockType, text []rune, chars []CharMeta, depth int, data map[string]any) (*Block, error) {
	if len(text) != len(chars) {
		return nil, fmt.Errorf("block %q: %d runes, %d metadata: %w", key, len(text), len(chars), ErrAnnotationLength)
	}
	if depth < 0 {
		return nil, fmt.Errorf("block %q: depth %d: %w", key, depth, ErrNegativeDepth)
	}
	if typ == "" {
		typ = Unstyled
	}
	return &Block{key: key, typ: typ, text: text, chars: chars, depth: depth, data: data}, nil
}

// Key returns the block key.
func (b *Block) Key() string { return b.key }

// Type returns the block type.
func (b *Block) Type() BlockType { return b.typ }

// Depth returns the nesting depth.
func (b *Block) Depth() int { return b.depth }

// Len returns the text length in runes.
func (b *Block) Len() int { return len(b.text) }

// Text returns the block text.
func (b *Block) Text() string { return string(b.text) }

// Runes returns a copy of the block text as runes.
func (b *Block) Runes() []rune { return slices.Clone(b.text) }

// Chars returns a copy of the per-character metadata.
func (b *Block) Chars() []CharMeta { return slices.Clone(b.chars) }

// Data returns a copy of the block data map.
func (b *Block) Data() map[string]any { return maps.Clone(b.data) }

// CharAt returns the metadata at offset.
func (b *Block) CharAt(offset int) CharMeta { return b.chars[offset] }

// StyleAt returns the inline style at offset.
func (b *Block) StyleAt(offset int) StyleSet { return b.chars[offset].Style }

// EntityAt returns the entity key at offset, or "".
func (b *Block) EntityAt(offset int) string { return b.chars[offset].Entity }

// RuneAt returns the rune at offset.
func (b *Block) RuneAt(offset int) rune { return b.text[offset] }

// SliceRunes returns a copy of text[start:end].
func (b *Block) SliceRunes(start, end int) []rune {
	return slices.Clone(b.text[start:end])
}

// SliceChars returns a copy of chars[start:end].
func (b *Block) SliceChars(start, end int) []CharMeta {
	return slices.Clone(b.chars[start:end])
}

// WithKey returns a copy of the block with a different key.
func (b *Block) WithKey(key string) *Block {
	nb := *b
	nb.key = key
	return &nb
}

// WithType returns a copy of the block with a different type.
func (b *Block) WithType(typ BlockType) *Block {
	nb := *b
	nb.typ = typ
	return &nb
}

// WithDepth returns a copy of the block with a different depth.
func (b *Block) WithDepth(depth int) (*Block, error) {
	if depth < 0 {
		return nil, fmt.Errorf("block %q: depth %d: %w", b.key, depth, ErrNegativeDepth)
	}
	nb := *b
	nb.depth = depth
	return &nb, nil
}

// WithData returns a copy of the block with a different data map.
func (b *Block) WithData(data map[string]any) *Block {
	nb := *b
	nb.data = maps.Clone(data)
	return &nb
}

// WithText returns a copy of the block with new text and metadata.
func (b *Block) WithText(text []rune, chars []CharMeta) (*Block, error) {
	return newBlock(b.key, b.typ, slices.Clone(text), slices.Clone(chars), b.depth, b.data)
}

// Range is a half-open rune range [Start, End) within one block.
type Range struct {
	Start int
	End   int
}

// Len returns the range length.
func (r Range) Len() int { return r.End - r.Start }

// EntityRange is a maximal run of characters sharing one entity.
type EntityRange struct {
	Range
	Key string
}

// EntityRanges returns the maximal runs of characters carrying an entity.
func (b *Block) EntityRanges() []EntityRange {
	var out []EntityRange
	for i := 0; i < len(b.chars); {
		key := b.chars[i].Entity
		j := i + 1
		for j < len(b.chars) && b.chars[j].Entity == key {
			j++
		}
		if key != "" {
			out = append(out, EntityRange{Range: Range{Start: i, End: j}, Key: key})
		}
		i = j
	}
	return out
}

// EntityRangeAt returns the run of the entity covering offset.
func (b *Block) EntityRangeAt(offset int) (EntityRange, bool) {
	if offset < 0 || offset >= len(b.chars) || b.chars[offset].Entity == "" {
		return EntityRange{}, false
	}
	key := b.chars[offset].Entity
	start, end := offset, offset+1
	for start > 0 && b.chars[start-1].Entity == key {
		start--
	}
	for end < len(b.chars) && b.chars[end].Entity == key {
		end++
	}
	return EntityRange{Range: Range{Start: start, End: end}, Key: key}, true
}

// StyleRanges returns the maximal runs of characters carrying name.
func (b *Block) StyleRanges(name string) []Range {
	var out []Range
	for i := 0; i < len(b.chars); {
		if !b.chars[i].Style.Has(name) {
			i++
			continue
		}
		j := i + 1
		for j < len(b.chars) && b.chars[j].Style.Has(name) {
			j++
		}
		out = append(out, Range{Start: i, End: j})
		i = j
	}
	return out
}

// Equal reports whether two blocks have the same key, type, depth, text,
// metadata and data.
func (b *Block) Equal(o *Block) bool {
	return b.key == o.key && b.EqualIgnoringKey(o)
}

// EqualIgnoringKey is Equal without comparing keys.
func (b *Block) EqualIgnoringKey(o *Block) bool {
	if b == o {
		return true
	}
	return b.typ == o.typ &&
		b.depth == o.depth &&
		slices.Equal(b.text, o.text) &&
		slices.Equal(b.chars, o.chars) &&
		dataEqual(b.data, o.data)
}

func dataEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
