package script

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingArg     = errors.New("missing argument")
)

type command struct {
	needsArg bool
	build    func(ev *EventSpec, c *content.Content) engine.Intent
}

var commands = map[string]command{
	"insert-text":  {true, insertText},
	"backspace":    {false, fixed(engine.Backspace{})},
	"delete":       {false, fixed(engine.Delete{})},
	"split":        {false, fixed(engine.SplitBlock{})},
	"merge":        {false, mergeBlocks},
	"undo":         {false, fixed(engine.Undo{})},
	"redo":         {false, fixed(engine.Redo{})},
	"toggle-style": {true, toggleStyle},
	"block-type":   {true, blockType},
	"indent":       {false, fixed(engine.AdjustDepth{Delta: 1})},
	"outdent":      {false, fixed(engine.AdjustDepth{Delta: -1})},
	"remove":       {false, removeRange},
	"replace":      {false, replaceText},
}

func fixed(in engine.Intent) func(*EventSpec, *content.Content) engine.Intent {
	return func(*EventSpec, *content.Content) engine.Intent { return in }
}

func insertText(ev *EventSpec, _ *content.Content) engine.Intent {
	return engine.InsertText{Text: ev.Arg}
}

func mergeBlocks(ev *EventSpec, _ *content.Content) engine.Intent {
	return engine.MergeBlocks{Key: ev.Arg}
}

func toggleStyle(ev *EventSpec, _ *content.Content) engine.Intent {
	return engine.ToggleInlineStyle{Style: ev.Arg}
}

func blockType(ev *EventSpec, _ *content.Content) engine.Intent {
	return engine.SetBlockType{Type: content.BlockType(ev.Arg)}
}

func removeRange(ev *EventSpec, c *content.Content) engine.Intent {
	return engine.RemoveRange{Selection: modelRange(ev.At, c)}
}

func replaceText(ev *EventSpec, c *content.Content) engine.Intent {
	return engine.ReplaceText{Selection: modelRange(ev.At, c), Text: ev.Arg}
}

// Commands returns the command names a script may use.
func Commands() []string {
	return slices.Sorted(maps.Keys(commands))
}

// checkCommand reports whether ev names a usable command.
func (ev *EventSpec) checkCommand() error {
	cmd, ok := commands[ev.Command]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownCommand, ev.Command)
	}
	if cmd.needsArg && ev.Arg == "" {
		return fmt.Errorf("%w: %s", errMissingArg, ev.Command)
	}
	return nil
}

// intent builds the intent of a command event against c.
func (ev *EventSpec) intent(c *content.Content) engine.Intent {
	return commands[ev.Command].build(ev, c)
}

// modelRange converts r to a model selection. A nil range yields the zero
// selection, which intents read as the current selection.
func modelRange(r *RangeSpec, c *content.Content) selection.Selection {
	if r == nil {
		return selection.Selection{}
	}
	f := r.focus()
	return c.Select(r.Anchor.Key, r.Anchor.Offset, f.Key, f.Offset)
}
