package reconcile

import (
	"log/slog"
	"maps"
	"time"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/modifier"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
)

// DefaultTimeout is how long a session may stay silent before it is
// committed without an end event.
const DefaultTimeout = 1500 * time.Millisecond

// Input types delivered by host before-input events during composition.
const (
	InputInsertCompositionText = "insertCompositionText"
	InputInsertText            = "insertText"
)

// Phase is the state of the composition state machine.
type Phase uint8

const (
	Idle Phase = iota
	Composing
	Committing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithClock sets the clock used for the inactivity timeout.
func WithClock(c Clock) ComposerOption {
	return func(cp *Composer) {
		if c != nil {
			cp.clock = c
		}
	}
}

// WithTimeout sets the inactivity timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) ComposerOption {
	return func(cp *Composer) {
		if d > 0 {
			cp.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ComposerOption {
	return func(cp *Composer) {
		if l != nil {
			cp.logger = l
		}
	}
}

// WithObserver registers an observer for commits and recoveries.
func WithObserver(o Observer) ComposerOption {
	return func(cp *Composer) {
		if o != nil {
			cp.observer = o
		}
	}
}

// Composer reconciles composition (IME) input with the model. It owns at
// most one session at a time.
type Composer struct {
	surface  *Surface
	clock    Clock
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer

	phase Phase
	sess  *session
}

// NewComposer creates a composer rendering commits through surface.
func NewComposer(surface *Surface, opts ...ComposerOption) *Composer {
	c := &Composer{
		surface:  surface,
		clock:    SystemClock(),
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current phase.
func (c *Composer) Phase() Phase { return c.phase }

// Timeout returns the inactivity timeout.
func (c *Composer) Timeout() time.Duration { return c.timeout }

// Session describes the active session.
func (c *Composer) Session() (SessionInfo, bool) {
	if c.sess == nil {
		return SessionInfo{}, false
	}
	s := c.sess
	return SessionInfo{
		BlockKey:    s.rng.key,
		Start:       s.rng.start,
		End:         s.rng.end,
		Tracked:     s.tracked,
		Reported:    s.reported,
		Frozen:      s.frozen,
		HasMutation: s.hasMutation,
	}, true
}

// Start begins a session. seed is the text the host reports as composing
// already, usually empty. A session that is still open is committed
// first.
func (c *Composer) Start(s *state.EditorState, seed string) *state.EditorState {
	if c.sess != nil {
		s = c.commit(s, c.sess.reported, HostRange{}, CauseImplicit)
	}

	sel := s.Selection()
	if !sel.IsCollapsed() && sel.StartKey() != sel.EndKey() {
		out, err := modifier.RemoveRange(s.Content(), sel, modifier.Forward)
		if err == nil {
			s = state.Push(s, out, state.RemoveRange)
			sel = s.Selection()
		} else {
			c.logger.Warn("composition start: cannot remove selection", "selection", sel, "error", err)
			sel = sel.CollapseToStart()
		}
	}

	seed = stripNewlines(seed)
	sess := &session{
		baseline:     s,
		caret:        sel.EndOffset(),
		reported:     seed,
		lastActivity: c.clock.Now(),
	}
	if b, ok := s.Content().Block(sel.EndKey()); ok {
		if sel.IsCollapsed() {
			sess.rng = locate(b, sel.EndOffset(), seed)
		} else {
			sess.rng = span{key: b.Key(), start: sel.StartOffset(), end: sel.EndOffset()}
		}
	} else {
		sess.rng = span{key: sel.EndKey(), start: sel.EndOffset(), end: sel.EndOffset()}
	}
	sess.retrack()
	sess.watch = c.surface.Host().WatchMutations(func() { sess.hasMutation = true })

	c.sess = sess
	c.phase = Composing
	c.logger.Debug("composition started",
		"block", sess.rng.key, "start", sess.rng.start, "end", sess.rng.end, "tracked", sess.tracked)
	return s.WithComposing(true)
}

// Update records new composing text. at is the host caret when the host
// reported one. A caret outside the composed text commits the previous
// text and starts a new session there.
func (c *Composer) Update(s *state.EditorState, text string, at HostRange) *state.EditorState {
	if c.sess == nil {
		s = c.Start(s, "")
	}
	sess := c.sess
	sess.lastActivity = c.clock.Now()
	text = stripNewlines(text)

	if sess.frozen {
		c.logger.Debug("composition update ignored, range frozen", "text", text)
		if !at.IsZero() {
			sess.host = at
		}
		return s
	}

	if !at.IsZero() {
		d := DeriveSelection(s, c.surface.Host(), at)
		if !d.NeedsRecovery && d.Selection.IsCollapsed() {
			caret := d.Selection.Anchor()
			if !sess.covers(caret.Key, caret.Offset) {
				return c.jump(s, caret, text)
			}
		}
		sess.host = at
	}

	sess.reported = text
	if b, ok := sess.baseline.Content().Block(sess.rng.key); ok {
		found := locate(b, sess.caret, text)
		if found.len() > 0 && found.touches(sess.rng) {
			sess.rng = sess.rng.union(found)
			sess.retrack()
		}
	}
	return s
}

// jump commits the session's text and starts a new session at caret,
// which is given in coordinates of the content before the commit.
func (c *Composer) jump(s *state.EditorState, caret selection.Point, text string) *state.EditorState {
	old := c.sess.rng
	delta := utf8.RuneCountInString(c.sess.reported) - old.len()
	c.logger.Debug("composition caret moved away, committing",
		"block", old.key, "start", old.start, "end", old.end, "to", caret.Key, "offset", caret.Offset)

	s = c.commit(s, c.sess.reported, HostRange{}, CauseImplicit)

	if caret.Key == old.key && caret.Offset > old.end {
		caret.Offset += delta
	}
	if b, ok := s.Content().Block(caret.Key); ok {
		caret.Offset = min(max(caret.Offset, 0), b.Len())
	}
	s = state.AcceptSelection(s, selection.Collapsed(caret.Key, caret.Offset).WithFocus(true))
	return c.Start(s, text)
}

// BeforeInput routes a host before-input event that arrives during a
// session into the session's text buffer, so text typed through either
// channel commits the same way. Once the host signals an insertion the
// range is frozen. The second result is false when no session is active
// or the input type is not composition text; the caller handles the
// event as ordinary input then.
func (c *Composer) BeforeInput(s *state.EditorState, inputType, data string) (*state.EditorState, bool) {
	if c.sess == nil {
		return s, false
	}
	sess := c.sess
	switch inputType {
	case InputInsertCompositionText:
		sess.reported = stripNewlines(data)
	case InputInsertText:
		sess.reported += stripNewlines(data)
	default:
		return s, false
	}
	sess.frozen = true
	sess.lastActivity = c.clock.Now()
	c.logger.Debug("composition input", "type", inputType, "reported", sess.reported)
	return s, true
}

// End commits the session with the host's final text. When the session
// buffer extends finalText (text typed through before-input after the
// last update), the buffer is committed instead. at is the freshest host
// selection, if any.
func (c *Composer) End(s *state.EditorState, finalText string, at HostRange) *state.EditorState {
	if c.sess == nil {
		s = c.Start(s, "")
	}
	finalText = stripNewlines(finalText)
	text := finalText
	if r := c.sess.reported; len(r) > len(text) && r[:len(text)] == text {
		text = r
	}
	return c.commit(s, text, at, CauseEnd)
}

// CheckTimeout commits the session with its last reported text when it
// has been silent for the timeout. The second result reports whether a
// commit happened.
func (c *Composer) CheckTimeout(s *state.EditorState, now time.Time) (*state.EditorState, bool) {
	if c.sess == nil || now.Sub(c.sess.lastActivity) < c.timeout {
		return s, false
	}
	c.logger.Info("composition timed out", "idle", now.Sub(c.sess.lastActivity), "reported", c.sess.reported)
	return c.commit(s, c.sess.reported, HostRange{}, CauseTimeout), true
}

// commit ends the session with text and renders the result.
func (c *Composer) commit(s *state.EditorState, text string, at HostRange, cause Cause) *state.EditorState {
	sess := c.sess
	c.phase = Committing
	defer c.release()

	sess.watch.Flush()
	if !at.IsZero() {
		sess.host = at
	}

	var ns *state.EditorState
	var outcome Outcome
	if text == sess.tracked {
		ns, outcome = c.commitSelection(s, sess)
	} else {
		ns, outcome = c.commitText(s, sess, text)
	}
	ns = ns.WithComposing(false)
	c.surface.Render(ns)

	c.observer.CompositionCommitted(cause, outcome)
	c.logger.Debug("composition committed",
		"cause", cause, "outcome", outcome, "text", text, "mutation", sess.hasMutation, "version", ns.Version())
	return ns
}

// commitSelection handles a commit that changes no text.
func (c *Composer) commitSelection(s *state.EditorState, sess *session) (*state.EditorState, Outcome) {
	sel, recovered := s.Selection(), false
	if !sess.host.IsZero() {
		d := DeriveSelection(s, c.surface.Host(), sess.host)
		sel, recovered = d.Selection, d.NeedsRecovery
		if recovered {
			c.observer.SelectionRecovered()
			c.logger.Info("selection recovered after composition", "error", d.Err)
		}
	}
	if sess.hasMutation {
		c.logger.Info("host mutated during composition, rebuilding")
		c.surface.Invalidate()
		return state.ForceSelection(s, sel), OutcomeRebuilt
	}
	if recovered {
		return state.ForceSelection(s, sel), OutcomeNoop
	}
	return state.AcceptSelection(s, sel), OutcomeNoop
}

// commitText replaces the session range in the baseline content with text.
func (c *Composer) commitText(s *state.EditorState, sess *session, text string) (*state.EditorState, Outcome) {
	base := sess.baseline.Content()
	r := sess.rng
	target := selection.New(r.key, r.start, r.key, r.end, false)
	style := sess.baseline.CurrentInlineStyle()
	entity := modifier.EntityKeyForSelection(base, selection.Collapsed(r.key, r.start))

	out, err := modifier.ReplaceText(base, target, text, style, entity)
	if err != nil {
		c.logger.Warn("composition commit rejected, rebuilding", "range", target, "error", err)
		c.surface.Invalidate()
		return state.ForceSelection(s, s.Selection()), OutcomeRebuilt
	}

	ct := state.InsertCharacters
	if text == "" {
		ct = state.RemoveRange
	}
	ns := state.Push(s, out, ct)

	switch {
	case sess.hasMutation:
		c.logger.Info("host mutated during composition, rebuilding")
		c.surface.Invalidate()
		return ns, OutcomeRebuilt
	case nativelyRenderable(sess.baseline, ns, r.key):
		return ns.WithForceSelection(false).WithNativelyRendered(ns.Content()), OutcomeNative
	default:
		return ns, OutcomeRebuilt
	}
}

// nativelyRenderable reports whether the host's own rendering of the
// composed block is still a faithful rendering of after.
func nativelyRenderable(before, after *state.EditorState, key string) bool {
	bt, ok := before.BlockTree(key)
	if !ok {
		return false
	}
	at, ok := after.BlockTree(key)
	if !ok || bt.Fingerprint() != at.Fingerprint() {
		return false
	}
	return maps.Equal(before.DirectionMap(), after.DirectionMap())
}

func (c *Composer) release() {
	if c.sess != nil {
		c.sess.watch.Close()
	}
	c.sess = nil
	c.phase = Idle
}
