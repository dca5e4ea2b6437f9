package app

import (
	"fmt"

	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/input/mode"
	"github.com/dshills/inkwell/internal/reconcile"
)

// handler processes one event in one mode.
type handler func(e *Editor, ev Event) error

// handlers is the dispatch table. Every mode handles every event kind;
// events that mean nothing in a mode are ignored.
var handlers = [mode.Count][EventKindCount]handler{
	mode.Edit: {
		EventSelect:            (*Editor).editSelect,
		EventBeforeInput:       (*Editor).editBeforeInput,
		EventCommand:           (*Editor).editCommand,
		EventCompositionStart:  (*Editor).compositionStart,
		EventCompositionUpdate: (*Editor).compositionUpdate,
		EventCompositionEnd:    (*Editor).compositionEnd,
		EventCopy:              (*Editor).editCopy,
		EventCut:               (*Editor).editCut,
		EventCutDone:           ignore,
		EventPaste:             (*Editor).editPaste,
		EventDragStart:         (*Editor).editDragStart,
		EventDrop:              (*Editor).editDrop,
		EventDragEnd:           ignore,
		EventTick:              (*Editor).tick,
	},
	mode.Composing: {
		EventSelect:            ignore,
		EventBeforeInput:       (*Editor).composingBeforeInput,
		EventCommand:           finishing((*Editor).editCommand),
		EventCompositionStart:  (*Editor).compositionStart,
		EventCompositionUpdate: (*Editor).compositionUpdate,
		EventCompositionEnd:    (*Editor).compositionEnd,
		EventCopy:              (*Editor).editCopy,
		EventCut:               finishing((*Editor).editCut),
		EventCutDone:           ignore,
		EventPaste:             finishing((*Editor).editPaste),
		EventDragStart:         ignore,
		EventDrop:              finishing((*Editor).editDrop),
		EventDragEnd:           ignore,
		EventTick:              (*Editor).tick,
	},
	mode.Dragging: {
		EventSelect:            ignore,
		EventBeforeInput:       ignore,
		EventCommand:           ignore,
		EventCompositionStart:  ignore,
		EventCompositionUpdate: ignore,
		EventCompositionEnd:    ignore,
		EventCopy:              ignore,
		EventCut:               ignore,
		EventCutDone:           ignore,
		EventPaste:             ignore,
		EventDragStart:         ignore,
		EventDrop:              (*Editor).dragDrop,
		EventDragEnd:           (*Editor).dragEnd,
		EventTick:              ignore,
	},
	mode.Cut: {
		EventSelect:            ignore,
		EventBeforeInput:       ignore,
		EventCommand:           ignore,
		EventCompositionStart:  ignore,
		EventCompositionUpdate: ignore,
		EventCompositionEnd:    ignore,
		EventCopy:              ignore,
		EventCut:               ignore,
		EventCutDone:           (*Editor).cutDone,
		EventPaste:             ignore,
		EventDragStart:         ignore,
		EventDrop:              ignore,
		EventDragEnd:           ignore,
		EventTick:              (*Editor).cutDone,
	},
}

func ignore(*Editor, Event) error { return nil }

// finishing commits an open composition before running h in Edit mode.
func finishing(h handler) handler {
	return func(e *Editor, ev Event) error {
		e.finishComposition()
		return h(e, ev)
	}
}

// finishComposition ends the active session with its last reported text.
func (e *Editor) finishComposition() {
	info, ok := e.composer.Session()
	if !ok {
		return
	}
	e.state = e.composer.End(e.state, info.Reported, reconcile.HostRange{})
	e.syncMode()
}

func (e *Editor) editSelect(ev Event) error {
	d := reconcile.DeriveSelection(e.state, e.surface.Host(), ev.Host)
	if d.NeedsRecovery {
		e.metrics.SelectionRecovered()
		e.logger.Debug("host selection recovered", "error", d.Err, "fallback", d.Selection)
	}
	e.state = reconcile.SyncSelection(e.state, d)
	return nil
}

func (e *Editor) editBeforeInput(ev Event) error {
	switch ev.InputType {
	case InputInsertText, InputInsertCompositionText:
		ns, native, err := e.engine.InsertNative(e.state, ev.Text)
		e.state = ns
		if err == nil && !native {
			e.logger.Debug("native insert rendered from model", "text", ev.Text)
		}
		return err
	case InputInsertParagraph, InputInsertLineBreak:
		return e.apply(engine.SplitBlock{})
	case InputDeleteBackward:
		return e.apply(engine.Backspace{})
	case InputDeleteForward:
		return e.apply(engine.Delete{})
	case InputHistoryUndo:
		return e.apply(engine.Undo{})
	case InputHistoryRedo:
		return e.apply(engine.Redo{})
	case InputInsertFromPaste:
		return e.editPaste(ev)
	}
	return fmt.Errorf("%w: %q", ErrUnknownInput, ev.InputType)
}

func (e *Editor) composingBeforeInput(ev Event) error {
	ns, handled := e.composer.BeforeInput(e.state, ev.InputType, ev.Text)
	e.state = ns
	if handled {
		return nil
	}
	e.finishComposition()
	return e.editBeforeInput(ev)
}

func (e *Editor) editCommand(ev Event) error {
	if ev.Intent == nil {
		return ErrNoIntent
	}
	return e.apply(ev.Intent)
}

func (e *Editor) compositionStart(ev Event) error {
	e.state = e.composer.Start(e.state, ev.Text)
	return nil
}

func (e *Editor) compositionUpdate(ev Event) error {
	e.state = e.composer.Update(e.state, ev.Text, ev.Host)
	return nil
}

func (e *Editor) compositionEnd(ev Event) error {
	e.state = e.composer.End(e.state, ev.Text, ev.Host)
	return nil
}

// copyFragment captures the selected content into the clipboard. A caret
// leaves the clipboard as it was.
func (e *Editor) copyFragment() (bool, error) {
	sel := e.state.Selection()
	if sel.IsCollapsed() {
		return false, nil
	}
	f, err := modifier.ExtractFragment(e.state.Content(), sel)
	if err != nil {
		return false, err
	}
	e.clipboard, e.hasClip = f, true
	return true, nil
}

func (e *Editor) editCopy(Event) error {
	_, err := e.copyFragment()
	return err
}

// editCut captures the selection and waits in Cut mode while the host
// removes the text from its own rendering.
func (e *Editor) editCut(Event) error {
	ok, err := e.copyFragment()
	if err != nil || !ok {
		return err
	}
	e.cutFrom = e.state.Selection()
	return e.modes.Switch(mode.Cut)
}

// cutDone removes the cut range from the model. The host rendering was
// changed behind the model's back and is rebuilt.
func (e *Editor) cutDone(Event) error {
	defer e.modes.Reset()
	err := e.apply(engine.RemoveRange{Selection: e.cutFrom})
	e.cutFrom = selection.Selection{}
	e.surface.Invalidate()
	return err
}

// editPaste inserts the clipboard fragment when the host text is absent
// or matches it, and the host text otherwise.
func (e *Editor) editPaste(ev Event) error {
	if e.hasClip && (ev.Text == "" || ev.Text == e.clipboard.Text()) {
		return e.apply(engine.InsertFragment{Fragment: e.clipboard})
	}
	if ev.Text == "" {
		return ErrNothingToPaste
	}
	return e.apply(engine.InsertText{Text: ev.Text})
}

func (e *Editor) editDragStart(Event) error {
	sel := e.state.Selection()
	if sel.IsCollapsed() {
		return nil
	}
	e.dragFrom = sel
	return e.modes.Switch(mode.Dragging)
}

// dropPoint resolves the host drop point to a model caret.
func (e *Editor) dropPoint(ev Event) (selection.Selection, error) {
	d := reconcile.DeriveSelection(e.state, e.surface.Host(), reconcile.HostCaret(ev.Host.Focus))
	if d.NeedsRecovery {
		e.metrics.SelectionRecovered()
		return selection.Selection{}, d.Err
	}
	return d.Selection, nil
}

// editDrop inserts text dragged in from outside the editor.
func (e *Editor) editDrop(ev Event) error {
	if ev.Text == "" {
		return nil
	}
	at, err := e.dropPoint(ev)
	if err != nil {
		return err
	}
	return e.apply(engine.ReplaceText{Selection: at, Text: ev.Text})
}

// dragDrop moves the dragged range to the drop point. Text that does not
// match the dragged range came from elsewhere and is inserted instead.
func (e *Editor) dragDrop(ev Event) error {
	defer e.endDrag()
	at, err := e.dropPoint(ev)
	if err != nil {
		return err
	}
	if ev.Text != "" {
		f, ferr := modifier.ExtractFragment(e.state.Content(), e.dragFrom)
		if ferr != nil || f.Text() != ev.Text {
			return e.apply(engine.ReplaceText{Selection: at, Text: ev.Text})
		}
	}
	return e.apply(engine.MoveText{From: e.dragFrom, To: at})
}

func (e *Editor) dragEnd(Event) error {
	e.endDrag()
	return nil
}

func (e *Editor) endDrag() {
	e.dragFrom = selection.Selection{}
	e.modes.Reset()
}

func (e *Editor) tick(ev Event) error {
	ns, committed := e.composer.CheckTimeout(e.state, e.now(ev))
	e.state = ns
	if committed {
		e.logger.Debug("composition committed on tick")
	}
	return nil
}
