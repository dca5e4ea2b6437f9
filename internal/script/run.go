package script

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/encoding"
	"github.com/dshills/inkwell/internal/engine/state"
	"github.com/dshills/inkwell/internal/input/mode"
	"github.com/dshills/inkwell/internal/reconcile"
)

// Epoch is the replay clock's start time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// StepError reports an event whose outcome differed from the script.
type StepError struct {
	Index int
	Kind  string
	Err   error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("event %d (%s): expected an error", e.Index, e.Kind)
	}
	return fmt.Sprintf("event %d (%s): %v", e.Index, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Runner replays scripts.
type Runner struct {
	// StateOptions configure the initial editor state.
	StateOptions []state.Option
	// EditorOptions configure the editor. The replay clock is added last.
	EditorOptions []app.Option
	// Logger receives one record per event. Nil disables step logging.
	Logger *slog.Logger
}

// Result is the outcome of a replay.
type Result struct {
	State *state.EditorState
	Mode  mode.Mode
	Host  *reconcile.MemoryHost
	// Failed counts events that failed as the script expected.
	Failed int
}

// Rebuilds returns the number of host rebuilds during the replay.
func (r *Result) Rebuilds() int {
	n := 0
	for _, cmd := range r.Host.Log() {
		if cmd.Kind == reconcile.CommandRebuild {
			n++
		}
	}
	return n
}

// Blocks returns the text of every block.
func (r *Result) Blocks() []string {
	blocks := r.State.Content().Blocks()
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text()
	}
	return out
}

// Run replays sc. It stops at the first event whose outcome differs from
// the script.
func (r Runner) Run(sc *Script) (*Result, error) {
	c, err := sc.content()
	if err != nil {
		return nil, err
	}

	opts := r.StateOptions
	if sc.Selection != nil {
		opts = append(opts[:len(opts):len(opts)], state.WithSelection(modelRange(sc.Selection, c)))
	}
	s := state.New(c, opts...)

	clock := reconcile.NewManualClock(Epoch)
	host := reconcile.NewMemoryHost(c, s.Decorator())
	ed := app.NewEditor(s, host, append(r.EditorOptions, app.WithClock(clock))...)

	res := &Result{Host: host}
	for i := range sc.Events {
		ev := &sc.Events[i]
		clock.Advance(ev.Advance.Std())

		err := ed.Dispatch(ev.event(host, ed.State().Content()))
		if r.Logger != nil {
			r.Logger.Debug("replayed event", "index", i, "kind", ev.kind, "mode", ed.Mode(), "error", err)
		}
		switch {
		case err != nil && !ev.Error:
			return nil, &StepError{Index: i, Kind: ev.Kind, Err: err}
		case err == nil && ev.Error:
			return nil, &StepError{Index: i, Kind: ev.Kind}
		case err != nil:
			res.Failed++
		}

		// the host already shows natively rendered text
		if ns := ed.State(); ns.IsNativelyRendered() && host.Content() != ns.Content() {
			host.Sync(ns.Content())
		}
	}

	res.State = ed.State()
	res.Mode = ed.Mode()
	return res, nil
}

func (sc *Script) content() (*content.Content, error) {
	if sc.Raw != "" {
		c, err := encoding.Unmarshal([]byte(sc.Raw))
		if err != nil {
			return nil, fmt.Errorf("%w: raw document: %w", ErrInvalidScript, err)
		}
		return c, nil
	}

	blocks := make([]*content.Block, len(sc.Blocks))
	for i, bs := range sc.Blocks {
		key := bs.Key
		if key == "" {
			key = content.GenerateKey()
		}
		typ := content.Unstyled
		if bs.Type != "" {
			typ = content.BlockType(bs.Type)
		}
		b, err := content.NewBlock(key, typ, bs.Text, nil, bs.Depth, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrInvalidScript, i, err)
		}
		blocks[i] = b
	}
	c, err := content.New(blocks, content.EntityMap{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	return c, nil
}

// event converts the spec to an editor event. Positions resolve against
// the host as it is now.
func (ev *EventSpec) event(host *reconcile.MemoryHost, c *content.Content) app.Event {
	out := app.Event{Kind: ev.kind, Text: ev.Text, InputType: ev.Input}
	if ev.At != nil {
		out.Host = reconcile.HostRange{
			Anchor: hostPoint(host, ev.At.Anchor),
			Focus:  hostPoint(host, ev.At.focus()),
		}
	}
	if ev.kind == app.EventCommand {
		out.Intent = ev.intent(c)
	}
	return out
}

// hostPoint maps p onto the host. A block the host does not display maps
// to a node the host cannot probe.
func hostPoint(host *reconcile.MemoryHost, p PointSpec) reconcile.HostPoint {
	if p.Node != "" {
		return reconcile.HostPoint{Node: p.Node, Offset: p.Offset}
	}
	hp, ok := host.Point(p.Key, p.Offset)
	if !ok {
		return reconcile.HostPoint{Node: p.Key, Offset: p.Offset}
	}
	return hp
}

// Check compares the result with the expectation. It returns nil when
// exp is nil.
func (r *Result) Check(exp *Expectation) error {
	if exp == nil {
		return nil
	}
	var errs []error
	if exp.Blocks != nil {
		got := r.Blocks()
		if !slices.Equal(got, exp.Blocks) {
			errs = append(errs, fmt.Errorf("blocks: got %q, want %q", got, exp.Blocks))
		}
	}
	if exp.Mode != "" {
		want, err := mode.Parse(exp.Mode)
		if err != nil {
			errs = append(errs, err)
		} else if r.Mode != want {
			errs = append(errs, fmt.Errorf("mode: got %s, want %s", r.Mode, want))
		}
	}
	if exp.Undo != nil {
		if got := r.State.UndoStack().Len(); got != *exp.Undo {
			errs = append(errs, fmt.Errorf("undo depth: got %d, want %d", got, *exp.Undo))
		}
	}
	if exp.Rebuilds != nil {
		if got := r.Rebuilds(); got != *exp.Rebuilds {
			errs = append(errs, fmt.Errorf("host rebuilds: got %d, want %d", got, *exp.Rebuilds))
		}
	}
	return errors.Join(errs...)
}
