package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/config"
)

// ErrInvalidScript indicates a script that cannot be replayed.
var ErrInvalidScript = errors.New("invalid script")

// Script is a replayable event sequence.
type Script struct {
	Name string `yaml:"name"`

	// Raw is an encoded document. It takes precedence over Blocks.
	Raw string `yaml:"raw"`

	Blocks    []BlockSpec  `yaml:"blocks"`
	Selection *RangeSpec   `yaml:"selection"`
	Events    []EventSpec  `yaml:"events"`
	Expect    *Expectation `yaml:"expect"`
}

// BlockSpec describes an initial block.
type BlockSpec struct {
	Key   string `yaml:"key"`
	Text  string `yaml:"text"`
	Type  string `yaml:"type"`
	Depth int    `yaml:"depth"`
}

// PointSpec is a position. Node names a host node directly and makes
// Offset relative to it; otherwise Key and Offset are model coordinates.
type PointSpec struct {
	Key    string `yaml:"key"`
	Offset int    `yaml:"offset"`
	Node   string `yaml:"node"`
}

// RangeSpec is a range. A missing focus collapses it onto the anchor.
type RangeSpec struct {
	Anchor PointSpec  `yaml:"anchor"`
	Focus  *PointSpec `yaml:"focus"`
}

func (r RangeSpec) focus() PointSpec {
	if r.Focus == nil {
		return r.Anchor
	}
	return *r.Focus
}

// EventSpec is one host event.
type EventSpec struct {
	Kind    string     `yaml:"kind"`
	Text    string     `yaml:"text"`
	Input   string     `yaml:"input"`
	At      *RangeSpec `yaml:"at"`
	Command string     `yaml:"command"`
	Arg     string     `yaml:"arg"`

	// Advance moves the replay clock forward before the event.
	Advance config.Duration `yaml:"advance"`

	// Error marks an event expected to fail.
	Error bool `yaml:"error"`

	kind app.EventKind
}

// Expectation is checked against the final state.
type Expectation struct {
	// Blocks is the text of every block in order.
	Blocks []string `yaml:"blocks"`
	Mode   string   `yaml:"mode"`
	// Undo is the expected undo stack depth.
	Undo *int `yaml:"undo"`
	// Rebuilds is the expected number of host rebuilds.
	Rebuilds *int `yaml:"rebuilds"`
}

// Parse decodes and checks a script.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if err := sc.check(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Script) check() error {
	if sc.Raw == "" && len(sc.Blocks) == 0 {
		return fmt.Errorf("%w: no raw document or blocks", ErrInvalidScript)
	}
	for i := range sc.Events {
		ev := &sc.Events[i]
		kind, ok := app.ParseEventKind(ev.Kind)
		if !ok {
			return fmt.Errorf("%w: event %d: unknown kind %q", ErrInvalidScript, i, ev.Kind)
		}
		ev.kind = kind
		if kind == app.EventCommand {
			if err := ev.checkCommand(); err != nil {
				return fmt.Errorf("%w: event %d: %w", ErrInvalidScript, i, err)
			}
		}
		if (kind == app.EventSelect || kind == app.EventDrop) && ev.At == nil {
			return fmt.Errorf("%w: event %d: %s needs a position", ErrInvalidScript, i, kind)
		}
	}
	return nil
}
