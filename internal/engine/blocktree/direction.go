package blocktree

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/dshills/inkwell/internal/engine/content"
)

// Direction is the base text direction of a block.
type Direction uint8

const (
	// Neutral blocks contain no strongly directional character.
	Neutral Direction = iota
	// LTR is left-to-right.
	LTR
	// RTL is right-to-left.
	RTL
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	default:
		return "NEUTRAL"
	}
}

// TextDirection returns the direction of the first strongly directional
// character of text, or Neutral.
func TextDirection(text string) Direction {
	for _, r := range text {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return LTR
		case bidi.R, bidi.AL:
			return RTL
		}
	}
	return Neutral
}

// DirectionMap resolves the direction of every block. Neutral blocks take
// the direction of the block before them; leading neutral blocks are LTR.
func DirectionMap(c *content.Content) map[string]Direction {
	out := make(map[string]Direction, c.Len())
	prev := LTR
	for _, b := range c.Blocks() {
		d := TextDirection(b.Text())
		if d == Neutral {
			d = prev
		}
		out[b.Key()] = d
		prev = d
	}
	return out
}
