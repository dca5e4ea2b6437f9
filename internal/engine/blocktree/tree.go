package blocktree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/inkwell/internal/engine/content"
)

// Leaf is a run of characters with one inline style.
type Leaf struct {
	Start int
	End   int
	Style content.StyleSet
}

// LeafSet is a run of characters with one decorator key ("" when
// undecorated), split into style leaves.
type LeafSet struct {
	Start        int
	End          int
	DecoratorKey string
	Leaves       []Leaf
}

// Tree is the leaf structure of one block.
type Tree []LeafSet

// Generate builds the tree of block b. An empty block yields a single
// empty leaf set holding a single empty leaf.
func Generate(c *content.Content, b *content.Block, d Decorator) Tree {
	if b.Len() == 0 {
		return Tree{{Leaves: []Leaf{{}}}}
	}
	var keys []string
	if d != nil {
		keys = d.Decorations(c, b)
	}
	keyAt := func(i int) string {
		if i < len(keys) {
			return keys[i]
		}
		return ""
	}

	var tree Tree
	for start := 0; start < b.Len(); {
		key := keyAt(start)
		end := start + 1
		for end < b.Len() && keyAt(end) == key {
			end++
		}
		tree = append(tree, LeafSet{Start: start, End: end, DecoratorKey: key, Leaves: styleLeaves(b, start, end)})
		start = end
	}
	return tree
}

func styleLeaves(b *content.Block, start, end int) []Leaf {
	var leaves []Leaf
	for i := start; i < end; {
		style := b.StyleAt(i)
		j := i + 1
		for j < end && b.StyleAt(j) == style {
			j++
		}
		leaves = append(leaves, Leaf{Start: i, End: j, Style: style})
		i = j
	}
	return leaves
}

// Fingerprint returns the structural signature of the tree: per leaf set
// "<decoratorKey>.<length>.<leafCount>" when decorated and ".<leafCount>"
// when not, joined by "-".
func (t Tree) Fingerprint() string {
	parts := make([]string, len(t))
	for i, ls := range t {
		if ls.DecoratorKey != "" {
			parts[i] = fmt.Sprintf("%s.%d.%d", ls.DecoratorKey, ls.End-ls.Start, len(ls.Leaves))
		} else {
			parts[i] = "." + strconv.Itoa(len(ls.Leaves))
		}
	}
	return strings.Join(parts, "-")
}

// Fingerprint generates the tree of b and returns its fingerprint.
func Fingerprint(c *content.Content, b *content.Block, d Decorator) string {
	return Generate(c, b, d).Fingerprint()
}

// Leaf returns the leaf at the given indices.
func (t Tree) Leaf(setIndex, leafIndex int) (Leaf, bool) {
	if setIndex < 0 || setIndex >= len(t) {
		return Leaf{}, false
	}
	leaves := t[setIndex].Leaves
	if leafIndex < 0 || leafIndex >= len(leaves) {
		return Leaf{}, false
	}
	return leaves[leafIndex], true
}

// Locate returns the indices of the leaf containing offset. An offset at a
// leaf boundary belongs to the leaf ending there, except at offset 0.
func (t Tree) Locate(offset int) (setIndex, leafIndex int) {
	for si, ls := range t {
		for li, l := range ls.Leaves {
			if offset >= l.Start && offset <= l.End && (offset > l.Start || l.Start == 0) {
				return si, li
			}
		}
	}
	last := len(t) - 1
	return last, len(t[last].Leaves) - 1
}

// IsLeafStart reports whether offset is the start of a leaf set or leaf.
// Text typed there lands in a different host node than the caret's.
func (t Tree) IsLeafStart(offset int) bool {
	for _, ls := range t {
		if offset == ls.Start {
			return true
		}
		if offset < ls.End {
			for _, l := range ls.Leaves {
				if offset == l.Start {
					return true
				}
			}
			return false
		}
	}
	return false
}

// LeafCount returns the total number of leaves.
func (t Tree) LeafCount() int {
	n := 0
	for _, ls := range t {
		n += len(ls.Leaves)
	}
	return n
}
