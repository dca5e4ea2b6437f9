// Package modifier implements the pure edit operations of the editor.
//
// Every operation takes an immutable *content.Content plus a
// selection.Selection describing the affected range and returns a new
// Content. Inputs are never modified. The returned Content records the
// selection before the edit and the collapsed selection after it, which
// the history uses to restore the caret.
//
// # Entity Mutability
//
// Removing text honours the mutability of entities touched by the range:
//
//   - MUTABLE entities shrink with partial deletion
//   - IMMUTABLE entities are deleted in full when any covered rune is removed
//   - SEGMENTED entities lose only the space-delimited segments touched
//
// Inserting inside a non-mutable entity strips that entity from its whole
// range, since the annotation no longer describes the text.
//
// # Errors
//
// A selection that references an unknown block or an out-of-bounds offset
// yields ErrInvalidRange and no content. Insertion text containing a
// newline yields ErrNewlineInText; newlines are block splits and must be
// applied with SplitBlock.
package modifier
