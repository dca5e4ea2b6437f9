package app

import (
	"errors"
	"fmt"

	"github.com/dshills/inkwell/internal/input/mode"
)

// Sentinel errors for editor operations.
var (
	// ErrUnknownEvent indicates an event kind outside the dispatch table.
	ErrUnknownEvent = errors.New("unknown event kind")

	// ErrUnknownInput indicates a before-input type the editor does not
	// translate into an edit.
	ErrUnknownInput = errors.New("unsupported input type")

	// ErrNoIntent indicates a command event without an intent.
	ErrNoIntent = errors.New("command without intent")

	// ErrNothingToPaste indicates a paste with neither host text nor an
	// editor clipboard.
	ErrNothingToPaste = errors.New("nothing to paste")
)

// EventError wraps an error raised while handling a host event.
type EventError struct {
	Mode  mode.Mode
	Event EventKind
	Err   error
}

// Error implements the error interface.
func (e *EventError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Mode, e.Event, e.Err)
	}
	return fmt.Sprintf("%s: %s: unknown error", e.Mode, e.Event)
}

// Unwrap returns the underlying error.
func (e *EventError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
func (e *EventError) Is(target error) bool {
	t, ok := target.(*EventError)
	if !ok {
		return false
	}
	return t.Event == e.Event && t.Mode == e.Mode
}

// newEventError creates an EventError.
func newEventError(m mode.Mode, kind EventKind, err error) *EventError {
	return &EventError{Mode: m, Event: kind, Err: err}
}
