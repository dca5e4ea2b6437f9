package content

import "github.com/rivo/uniseg"

// graphemeBoundaries returns the rune offsets at which grapheme clusters
// start, plus len(text).
func graphemeBoundaries(text []rune) []int {
	bounds := make([]int, 0, len(text)+1)
	bounds = append(bounds, 0)
	if len(text) == 0 {
		return bounds
	}
	g := uniseg.NewGraphemes(string(text))
	off := 0
	for g.Next() {
		off += len(g.Runes())
		bounds = append(bounds, off)
	}
	return bounds
}

// PrevGraphemeBoundary returns the start of the grapheme cluster ending at
// or containing offset-1. It returns 0 at the start of the block.
func (b *Block) PrevGraphemeBoundary(offset int) int {
	prev := 0
	for _, bound := range graphemeBoundaries(b.text) {
		if bound >= offset {
			break
		}
		prev = bound
	}
	return prev
}

// NextGraphemeBoundary returns the end of the grapheme cluster starting at
// or containing offset. It returns Len() at the end of the block.
func (b *Block) NextGraphemeBoundary(offset int) int {
	for _, bound := range graphemeBoundaries(b.text) {
		if bound > offset {
			return bound
		}
	}
	return len(b.text)
}

// SnapToGrapheme moves offset back to the nearest grapheme cluster start so
// that a caret never lands inside a combining sequence.
func (b *Block) SnapToGrapheme(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(b.text) {
		return len(b.text)
	}
	snapped := 0
	for _, bound := range graphemeBoundaries(b.text) {
		if bound > offset {
			break
		}
		snapped = bound
	}
	return snapped
}
