package engine

import (
	"errors"

	"github.com/dshills/inkwell/internal/engine/modifier"
)

// Errors returned by engine operations.
var (
	// ErrInvalidRange indicates an intent whose selection references an
	// unknown block or an out-of-bounds offset.
	ErrInvalidRange = modifier.ErrInvalidRange

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrUnknownIntent indicates an intent type the engine cannot apply.
	ErrUnknownIntent = errors.New("unknown intent")
)
