package app

import (
	"time"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/reconcile"
)

// EventKind identifies a host event.
type EventKind uint8

// Host event kinds.
const (
	EventSelect EventKind = iota
	EventBeforeInput
	EventCommand
	EventCompositionStart
	EventCompositionUpdate
	EventCompositionEnd
	EventCopy
	EventCut
	EventCutDone
	EventPaste
	EventDragStart
	EventDrop
	EventDragEnd
	EventTick

	// EventKindCount is the number of event kinds.
	EventKindCount int = iota
)

var eventNames = [EventKindCount]string{
	EventSelect:            "select",
	EventBeforeInput:       "beforeinput",
	EventCommand:           "command",
	EventCompositionStart:  "compositionstart",
	EventCompositionUpdate: "compositionupdate",
	EventCompositionEnd:    "compositionend",
	EventCopy:              "copy",
	EventCut:               "cut",
	EventCutDone:           "cutdone",
	EventPaste:             "paste",
	EventDragStart:         "dragstart",
	EventDrop:              "drop",
	EventDragEnd:           "dragend",
	EventTick:              "tick",
}

// String returns the event name.
func (k EventKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return eventNames[k]
}

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	return int(k) < EventKindCount
}

// ParseEventKind returns the kind named s.
func ParseEventKind(s string) (EventKind, bool) {
	for i, name := range eventNames {
		if name == s {
			return EventKind(i), true
		}
	}
	return 0, false
}

// Before-input types understood outside composition.
const (
	InputInsertText            = reconcile.InputInsertText
	InputInsertCompositionText = reconcile.InputInsertCompositionText
	InputInsertParagraph       = "insertParagraph"
	InputInsertLineBreak       = "insertLineBreak"
	InputDeleteBackward        = "deleteContentBackward"
	InputDeleteForward         = "deleteContentForward"
	InputHistoryUndo           = "historyUndo"
	InputHistoryRedo           = "historyRedo"
	InputInsertFromPaste       = "insertFromPaste"
)

// Event is a host event delivered to the editor.
type Event struct {
	Kind EventKind

	// Text is the event payload: typed or composed text, clipboard or
	// dropped text.
	Text string

	// InputType is the before-input type.
	InputType string

	// Host is the host selection or drop point, if the event carries one.
	Host reconcile.HostRange

	// Intent is the edit requested by a command event.
	Intent engine.Intent

	// Time is the tick time. The editor clock is used when zero.
	Time time.Time
}
