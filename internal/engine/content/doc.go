// Package content provides the immutable document model for the editor.
//
// The content package provides:
//
//   - Block: one paragraph-equivalent unit with per-rune style/entity metadata
//   - EntityMap: the append-only table of out-of-band annotations (links, mentions)
//   - Content: the ordered block list plus the entity table
//
// Every value in this package is immutable. Operations that "change" a
// block or a document return a new value and leave the receiver untouched,
// so a Content can be shared freely between editor states, undo stacks and
// goroutines.
//
// Invariants enforced here:
//
//   - len(block.Chars()) == len(block.Runes()) for every block
//   - block keys are unique within a Content
//   - every entity key referenced by a block resolves in the EntityMap
//
// The last invariant is checked by Content.Validate. A violation means an
// edit operation composed content incorrectly; it is reported as
// ErrEntityMissing carrying a stack trace and must be treated as corruption.
//
// Basic usage:
//
//	c := content.FromText("Hello world\nSecond paragraph")
//	first := c.First()
//	fmt.Println(first.Text()) // "Hello world"
//
//	// Attach a link entity
//	c2, key := c.AddEntity(content.Entity{
//	    Type:       "LINK",
//	    Mutability: content.Mutable,
//	    Data:       map[string]any{"url": "https://example.com"},
//	})
package content
