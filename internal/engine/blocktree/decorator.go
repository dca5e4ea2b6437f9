package blocktree

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/content"
)

// Decorator assigns decorator keys to the characters of a block.
// Decorations returns one key per character, "" for undecorated ones.
// A nil Decorator decorates nothing.
type Decorator interface {
	Decorations(c *content.Content, b *content.Block) []string
}

// Strategy finds the ranges of a block a decorator component applies to.
// Ranges are half-open rune offsets and must not overlap each other.
type Strategy interface {
	Find(c *content.Content, b *content.Block, emit func(start, end int))
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(c *content.Content, b *content.Block, emit func(start, end int))

// Find calls f.
func (f StrategyFunc) Find(c *content.Content, b *content.Block, emit func(start, end int)) {
	f(c, b, emit)
}

// CompositeDecorator combines strategies. Earlier strategies win where
// ranges overlap. Keys have the form "<strategyIndex>.<occurrence>".
type CompositeDecorator struct {
	strategies []Strategy
}

// NewCompositeDecorator creates a decorator from strategies in priority
// order.
func NewCompositeDecorator(strategies ...Strategy) *CompositeDecorator {
	return &CompositeDecorator{strategies: strategies}
}

// Decorations implements Decorator.
func (d *CompositeDecorator) Decorations(c *content.Content, b *content.Block) []string {
	keys := make([]string, b.Len())
	for i, s := range d.strategies {
		occurrence := 0
		s.Find(c, b, func(start, end int) {
			start, end = max(start, 0), min(end, b.Len())
			if start >= end {
				return
			}
			for j := start; j < end; j++ {
				if keys[j] != "" {
					return
				}
			}
			key := fmt.Sprintf("%d.%d", i, occurrence)
			occurrence++
			for j := start; j < end; j++ {
				keys[j] = key
			}
		})
	}
	return keys
}

// RegexStrategy decorates every match of re in the block text.
func RegexStrategy(re *regexp.Regexp) Strategy {
	return StrategyFunc(func(_ *content.Content, b *content.Block, emit func(start, end int)) {
		text := b.Text()
		for _, m := range re.FindAllStringIndex(text, -1) {
			start := utf8.RuneCountInString(text[:m[0]])
			end := start + utf8.RuneCountInString(text[m[0]:m[1]])
			emit(start, end)
		}
	})
}

// EntityStrategy decorates every entity range whose entity has the given
// type.
func EntityStrategy(entityType string) Strategy {
	return StrategyFunc(func(c *content.Content, b *content.Block, emit func(start, end int)) {
		for _, r := range b.EntityRanges() {
			if e, ok := c.Entity(r.Key); ok && e.Type == entityType {
				emit(r.Start, r.End)
			}
		}
	})
}
