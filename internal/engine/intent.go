package engine

import (
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// Intent is an edit request. Intents that carry a Selection apply to the
// current editor selection when it is left zero.
type Intent interface {
	intent()
}

// InsertText types text at the selection with the current inline style.
// Newlines split blocks.
type InsertText struct {
	Text string
}

// ReplaceText replaces a range with text. Style defaults to the current
// inline style when nil.
type ReplaceText struct {
	Selection selection.Selection
	Text      string
	Style     *content.StyleSet
	EntityKey string
}

// Backspace deletes backwards from the selection.
type Backspace struct{}

// Delete deletes forwards from the selection.
type Delete struct{}

// RemoveRange deletes a range.
type RemoveRange struct {
	Selection selection.Selection
}

// SplitBlock splits the block at the selection.
type SplitBlock struct{}

// MergeBlocks joins a block with the block after it.
type MergeBlocks struct {
	Key string
}

// SetBlockType changes the type of the selected blocks.
type SetBlockType struct {
	Type content.BlockType
}

// AdjustDepth changes the depth of the selected blocks by Delta.
type AdjustDepth struct {
	Delta int
}

// ToggleInlineStyle toggles a style on the selected text. On a caret it
// toggles the style of the next typed text.
type ToggleInlineStyle struct {
	Style string
}

// ApplyEntity sets the entity of a range. An empty key removes entities.
type ApplyEntity struct {
	Selection selection.Selection
	EntityKey string
}

// InsertFragment pastes a fragment at the selection.
type InsertFragment struct {
	Fragment modifier.Fragment
}

// MoveText moves the From range to the To caret, as on an internal drop.
type MoveText struct {
	From selection.Selection
	To   selection.Selection
}

// Undo restores the previous content.
type Undo struct{}

// Redo reapplies the last undone content.
type Redo struct{}

func (InsertText) intent()        {}
func (ReplaceText) intent()       {}
func (Backspace) intent()         {}
func (Delete) intent()            {}
func (RemoveRange) intent()       {}
func (SplitBlock) intent()        {}
func (MergeBlocks) intent()       {}
func (SetBlockType) intent()      {}
func (AdjustDepth) intent()       {}
func (ToggleInlineStyle) intent() {}
func (ApplyEntity) intent()       {}
func (InsertFragment) intent()    {}
func (MoveText) intent()          {}
func (Undo) intent()              {}
func (Redo) intent()              {}
