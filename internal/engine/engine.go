package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
)

// Engine applies edit intents to editor states.
type Engine struct {
	maxDepth int
	readOnly bool
	validate bool
	logger   *slog.Logger
	observer Observer
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Apply derives the state that results from applying in to s. On error s
// is returned unchanged together with the error.
func (e *Engine) Apply(s *state.EditorState, in Intent) (*state.EditorState, error) {
	if e.readOnly {
		return s, ErrReadOnly
	}
	switch in := in.(type) {
	case Undo:
		if ns := state.Undo(s); ns != s {
			return e.finish(ns, state.UndoChange), nil
		}
		return s, nil
	case Redo:
		if ns := state.Redo(s); ns != s {
			return e.finish(ns, state.RedoChange), nil
		}
		return s, nil
	case ToggleInlineStyle:
		if s.Selection().IsCollapsed() {
			style := s.CurrentInlineStyle()
			if style.Has(in.Style) {
				style = style.Remove(in.Style)
			} else {
				style = style.Add(in.Style)
			}
			return s.WithInlineStyleOverride(style), nil
		}
	}

	c, ct, err := e.derive(s, in)
	if err != nil {
		e.logger.Debug("edit rejected", "intent", fmt.Sprintf("%T", in), "error", err)
		return s, err
	}
	if c == nil {
		return s, nil
	}
	return e.finish(state.Push(s, c, ct), ct), nil
}

func (e *Engine) finish(ns *state.EditorState, ct state.ChangeType) *state.EditorState {
	if e.validate {
		ns.Content().MustValidate()
	}
	if e.observer != nil {
		e.observer.EditApplied(ct)
	}
	e.logger.Debug("edit applied", "change", ct, "version", ns.Version())
	return ns
}

// derive computes the content produced by in. A nil content with a nil
// error means the intent is a no-op at the current selection.
func (e *Engine) derive(s *state.EditorState, in Intent) (*content.Content, state.ChangeType, error) {
	c, sel := s.Content(), s.Selection()
	pick := func(override selection.Selection) selection.Selection {
		if override.IsZero() {
			return sel
		}
		return override
	}

	switch in := in.(type) {
	case InsertText:
		return e.insertText(s, in.Text)

	case ReplaceText:
		target := pick(in.Selection)
		style := s.CurrentInlineStyle()
		if in.Style != nil {
			style = *in.Style
		}
		out, err := modifier.ReplaceText(c, target, in.Text, style, in.EntityKey)
		return out, state.InsertCharacters, err

	case Backspace:
		return e.backspace(s)

	case Delete:
		target, err := modifier.DeleteRange(c, sel)
		if err != nil || target.IsCollapsed() {
			return nil, state.None, err
		}
		out, err := modifier.RemoveRange(c, target, modifier.Forward)
		ct := state.DeleteCharacter
		if !sel.IsCollapsed() {
			ct = state.RemoveRange
		}
		return out, ct, err

	case RemoveRange:
		target := pick(in.Selection)
		if target.IsCollapsed() {
			if err := c.ValidateSelection(target); err != nil {
				return nil, state.None, fmt.Errorf("%w: %w", ErrInvalidRange, err)
			}
			return nil, state.None, nil
		}
		out, err := modifier.RemoveRange(c, target, modifier.Backward)
		return out, state.RemoveRange, err

	case SplitBlock:
		out, err := modifier.SplitBlock(c, sel)
		return out, state.SplitBlock, err

	case MergeBlocks:
		key := in.Key
		if key == "" {
			key = sel.StartKey()
		}
		out, err := modifier.MergeBlocks(c, key)
		return out, state.RemoveRange, err

	case SetBlockType:
		out, err := modifier.SetBlockType(c, sel, in.Type)
		return out, state.ChangeBlockType, err

	case AdjustDepth:
		out, err := modifier.AdjustDepth(c, sel, in.Delta, e.maxDepth)
		return out, state.ChangeBlockDepth, err

	case ToggleInlineStyle:
		var out *content.Content
		var err error
		if s.CurrentInlineStyle().Has(in.Style) {
			out, err = modifier.RemoveInlineStyle(c, sel, in.Style)
		} else {
			out, err = modifier.ApplyInlineStyle(c, sel, in.Style)
		}
		return out, state.ChangeInlineStyle, err

	case ApplyEntity:
		out, err := modifier.ApplyEntity(c, pick(in.Selection), in.EntityKey)
		return out, state.ApplyEntity, err

	case InsertFragment:
		out, err := modifier.InsertFragment(c, sel, in.Fragment)
		return out, state.InsertFragment, err

	case MoveText:
		out, err := modifier.MoveText(c, in.From, pick(in.To))
		return out, state.InsertFragment, err
	}
	return nil, state.None, fmt.Errorf("%w: %T", ErrUnknownIntent, in)
}

// insertText types text at the selection. Each newline becomes a block
// split, and the whole insertion is a single undo step.
func (e *Engine) insertText(s *state.EditorState, text string) (*content.Content, state.ChangeType, error) {
	c, sel := s.Content(), s.Selection()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" && sel.IsCollapsed() {
		return nil, state.None, c.ValidateSelection(sel)
	}
	style := s.CurrentInlineStyle()
	lines := strings.Split(text, "\n")

	out, err := modifier.ReplaceText(c, sel, lines[0], style, modifier.EntityKeyForSelection(c, sel))
	if err != nil {
		return nil, state.None, err
	}
	for _, line := range lines[1:] {
		if out, err = modifier.SplitBlock(out, out.SelectionAfter()); err != nil {
			return nil, state.None, err
		}
		if out, err = modifier.InsertText(out, out.SelectionAfter(), line, style, ""); err != nil {
			return nil, state.None, err
		}
	}
	if len(lines) > 1 {
		return out.WithSelectionBefore(sel), state.InsertFragment, nil
	}
	return out, state.InsertCharacters, nil
}

// backspace removes the grapheme before a caret or the selected range.
// A caret at the start of a styled block first resets the block to
// unstyled, as word processors do for list items and headings.
func (e *Engine) backspace(s *state.EditorState) (*content.Content, state.ChangeType, error) {
	c, sel := s.Content(), s.Selection()
	target, err := modifier.BackspaceRange(c, sel)
	if err != nil {
		return nil, state.None, err
	}
	if sel.IsCollapsed() && sel.AnchorOffset() == 0 {
		b, _ := c.Block(sel.AnchorKey())
		if b.Type() != content.Unstyled && !continuesCodeBlock(c, b) {
			out, err := modifier.SetBlockType(c, sel, content.Unstyled)
			return out, state.ChangeBlockType, err
		}
	}
	if target.IsCollapsed() {
		return nil, state.None, nil
	}
	out, err := modifier.RemoveRange(c, target, modifier.Backward)
	ct := state.BackspaceCharacter
	if !sel.IsCollapsed() {
		ct = state.RemoveRange
	}
	return out, ct, err
}

// continuesCodeBlock reports whether b is a code block following a
// non-empty code block, in which case Backspace joins the two.
func continuesCodeBlock(c *content.Content, b *content.Block) bool {
	if b.Type() != content.CodeBlock {
		return false
	}
	prev, ok := c.BlockBefore(b.Key())
	return ok && prev.Type() == content.CodeBlock && prev.Len() > 0
}
