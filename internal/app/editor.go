package app

import (
	"log/slog"
	"time"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
	"github.com/dshills/inkwell/internal/input/mode"
	"github.com/dshills/inkwell/internal/reconcile"
)

// Option configures an Editor.
type Option func(*editorOptions)

type editorOptions struct {
	logger     *slog.Logger
	metrics    *Metrics
	clock      reconcile.Clock
	timeout    time.Duration
	engineOpts []engine.Option
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *editorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records editor activity in m.
func WithMetrics(m *Metrics) Option {
	return func(o *editorOptions) {
		o.metrics = m
	}
}

// WithClock sets the clock used for composition timeouts and ticks.
func WithClock(c reconcile.Clock) Option {
	return func(o *editorOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithCompositionTimeout sets how long a composition session may stay
// silent before a tick commits it.
func WithCompositionTimeout(d time.Duration) Option {
	return func(o *editorOptions) {
		o.timeout = d
	}
}

// WithEngineOptions passes options to the edit engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *editorOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// Editor owns the current editor state and feeds host events through
// the engine, the composer and the host surface.
//
// An Editor is not safe for concurrent use. Hosts deliver events from a
// single thread.
type Editor struct {
	engine   *engine.Engine
	surface  *reconcile.Surface
	composer *reconcile.Composer
	modes    *mode.Manager
	clock    reconcile.Clock
	logger   *slog.Logger
	metrics  *Metrics

	state *state.EditorState

	clipboard modifier.Fragment
	hasClip   bool

	// dragFrom is the selection being dragged in Dragging mode.
	dragFrom selection.Selection
	// cutFrom is the range removed when a cut completes.
	cutFrom selection.Selection
}

// NewEditor creates an editor for s rendered on host. The host is assumed
// to display the content of s.
func NewEditor(s *state.EditorState, host reconcile.Host, opts ...Option) *Editor {
	o := editorOptions{
		logger: slog.Default(),
		clock:  reconcile.SystemClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := WithComponent(o.logger, "editor")
	engineOpts := append([]engine.Option{
		engine.WithLogger(WithComponent(o.logger, "engine")),
	}, o.engineOpts...)
	var observer reconcile.Observer
	if o.metrics != nil {
		engineOpts = append(engineOpts, engine.WithObserver(o.metrics))
		observer = o.metrics
	}

	surface := reconcile.NewSurface(host, s.Content(), observer)
	composerOpts := []reconcile.ComposerOption{
		reconcile.WithClock(o.clock),
		reconcile.WithTimeout(o.timeout),
		reconcile.WithLogger(WithComponent(o.logger, "composer")),
	}
	if observer != nil {
		composerOpts = append(composerOpts, reconcile.WithObserver(observer))
	}

	e := &Editor{
		engine:   engine.New(engineOpts...),
		surface:  surface,
		composer: reconcile.NewComposer(surface, composerOpts...),
		modes:    mode.NewManager(),
		clock:    o.clock,
		logger:   logger,
		metrics:  o.metrics,
		state:    s,
	}
	e.modes.OnChange(func(from, to mode.Mode) {
		e.metrics.ModeChanged(from, to)
		e.logger.Debug("mode changed", "from", from, "to", to)
	})
	return e
}

// State returns the current editor state.
func (e *Editor) State() *state.EditorState { return e.state }

// Mode returns the current input mode.
func (e *Editor) Mode() mode.Mode { return e.modes.Current() }

// Clipboard returns the fragment captured by the last copy or cut.
func (e *Editor) Clipboard() (modifier.Fragment, bool) { return e.clipboard, e.hasClip }

// Composer returns the composition reconciler.
func (e *Editor) Composer() *reconcile.Composer { return e.composer }

// Surface returns the host surface.
func (e *Editor) Surface() *reconcile.Surface { return e.surface }

// Dispatch handles one host event. The handler is chosen by the current
// mode and the event kind. The resulting state is rendered on the host
// even when the handler fails; a failing handler leaves the state as it
// was before the failing step.
func (e *Editor) Dispatch(ev Event) error {
	current := e.modes.Current()
	if !ev.Kind.Valid() {
		return newEventError(current, ev.Kind, ErrUnknownEvent)
	}
	e.metrics.EventDispatched(current, ev.Kind)

	err := handlers[current][ev.Kind](e, ev)
	e.syncMode()
	e.surface.Render(e.state)

	if err != nil {
		e.logger.Warn("event failed", "mode", current, "event", ev.Kind, "error", err)
		return newEventError(current, ev.Kind, err)
	}
	return nil
}

// syncMode follows the composer into and out of Composing mode.
func (e *Editor) syncMode() {
	composing := e.composer.Phase() != reconcile.Idle
	switch cur := e.modes.Current(); {
	case composing && cur == mode.Edit:
		_ = e.modes.Switch(mode.Composing)
	case !composing && cur == mode.Composing:
		_ = e.modes.Switch(mode.Edit)
	}
}

// apply runs an intent against the current state.
func (e *Editor) apply(in engine.Intent) error {
	ns, err := e.engine.Apply(e.state, in)
	e.state = ns
	return err
}

// now returns the tick time of ev, or the clock time.
func (e *Editor) now(ev Event) time.Time {
	if ev.Time.IsZero() {
		return e.clock.Now()
	}
	return ev.Time
}
