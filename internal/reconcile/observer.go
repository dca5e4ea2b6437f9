package reconcile

// Cause is what ended a composition session.
type Cause uint8

const (
	// CauseEnd is an explicit end event from the host.
	CauseEnd Cause = iota

	// CauseImplicit is a caret jump to another word mid-session, or a new
	// session starting before the previous one ended.
	CauseImplicit

	// CauseTimeout is the inactivity fallback.
	CauseTimeout
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseEnd:
		return "end"
	case CauseImplicit:
		return "implicit"
	case CauseTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Outcome is how a commit reached the host.
type Outcome uint8

const (
	// OutcomeNoop changed no text.
	OutcomeNoop Outcome = iota

	// OutcomeNative changed text the host already displays.
	OutcomeNative

	// OutcomeRebuilt required the host to be rebuilt from the model.
	OutcomeRebuilt
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeNative:
		return "native"
	case OutcomeRebuilt:
		return "rebuilt"
	default:
		return "unknown"
	}
}

// Observer receives reconciliation events, typically for metrics.
type Observer interface {
	CompositionCommitted(cause Cause, outcome Outcome)
	HostRebuilt()
	SelectionRecovered()
}

type nopObserver struct{}

func (nopObserver) CompositionCommitted(Cause, Outcome) {}
func (nopObserver) HostRebuilt()                        {}
func (nopObserver) SelectionRecovered()                 {}
