package state

// ChangeType classifies the edit that produced a state.
type ChangeType string

// Change types.
const (
	None               ChangeType = "none"
	InsertCharacters   ChangeType = "insert-characters"
	BackspaceCharacter ChangeType = "backspace-character"
	DeleteCharacter    ChangeType = "delete-character"
	RemoveRange        ChangeType = "remove-range"
	InsertFragment     ChangeType = "insert-fragment"
	SplitBlock         ChangeType = "split-block"
	ChangeBlockType    ChangeType = "change-block-type"
	ChangeBlockDepth   ChangeType = "change-block-depth"
	ChangeInlineStyle  ChangeType = "change-inline-style"
	ApplyEntity        ChangeType = "apply-entity"
	UndoChange         ChangeType = "undo"
	RedoChange         ChangeType = "redo"
)

// IsContinuous reports whether consecutive edits of this type may share
// one undo entry.
func (t ChangeType) IsContinuous() bool {
	switch t {
	case InsertCharacters, BackspaceCharacter, DeleteCharacter:
		return true
	}
	return false
}

// keepsStyleOverride reports whether an edit of this type preserves a
// pending inline style override, so that e.g. toggling bold and pressing
// Enter still types bold text in the new block.
func (t ChangeType) keepsStyleOverride() bool {
	switch t {
	case SplitBlock, ChangeBlockType, ChangeBlockDepth:
		return true
	}
	return false
}

func (t ChangeType) String() string { return string(t) }
