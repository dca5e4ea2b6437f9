// Package selection provides the immutable selection model for the editor.
//
// A Selection is an anchor/focus pair of (block key, rune offset) points.
// Anchor is where the selection started; Focus is where the caret is.
// When both points are equal the selection is collapsed and represents a
// caret with no selected text.
//
// Direction Model:
//
// Whether a selection is backward (focus before anchor in document order)
// cannot be decided from the keys alone, so the flag is supplied by the
// caller that knows the block order. The content package derives it with
// Content.Select.
//
// Basic usage:
//
//	// A caret after the fifth rune of block "a1b2c"
//	sel := selection.Collapsed("a1b2c", 5)
//
//	// Extend within the same block
//	sel = sel.ExtendTo("a1b2c", 9, false)
//
//	// Start/End are always in document order
//	key, off := sel.StartKey(), sel.StartOffset()
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
package selection
