package engine

import (
	"log/slog"

	"github.com/dshills/inkwell/internal/engine/state"
)

// Default configuration values.
const (
	DefaultMaxDepth = 4
)

// Observer is notified of every applied edit. The app package uses it to
// feed metrics.
type Observer interface {
	EditApplied(ct state.ChangeType)
	NativeInsert(accepted bool)
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxDepth sets the maximum block depth reachable with AdjustDepth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth >= 0 {
			e.maxDepth = depth
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit intents will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithValidation makes the engine assert the structural invariants of
// every content it produces. A violation is a programming error and
// panics.
func WithValidation() Option {
	return func(e *Engine) {
		e.validate = true
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an edit observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}
