package reconcile

import (
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
)

// HostPoint is a selection edge as the host reports it: an opaque node
// identifier and a code-point offset inside that node's text.
type HostPoint struct {
	Node   string
	Offset int
}

// HostRange is a host selection. The zero value means the host reported
// no selection.
type HostRange struct {
	Anchor HostPoint
	Focus  HostPoint
}

// HostCaret returns a collapsed host range.
func HostCaret(p HostPoint) HostRange {
	return HostRange{Anchor: p, Focus: p}
}

// IsZero reports whether r carries no selection.
func (r HostRange) IsZero() bool {
	return r == HostRange{}
}

// Prober resolves host nodes to the offset key of the leaf that renders
// them.
type Prober interface {
	Probe(node string) (offsetKey string, ok bool)
}

// MutationWatch is an active subscription to structural mutations of the
// host surface.
type MutationWatch interface {
	// Flush synchronously delivers every pending mutation record.
	Flush()

	// Close ends the subscription. Close is idempotent.
	Close()
}

// Host is the host surface collaborator.
type Host interface {
	Prober

	// Rebuild discards the host rendering and renders c from scratch.
	Rebuild(c *content.Content)

	// ApplySelection imperatively places the host selection.
	ApplySelection(sel selection.Selection)

	// WatchMutations calls fn for every batch of structural mutations
	// until the returned watch is closed. Delivery may be deferred until
	// the next Flush.
	WatchMutations(fn func()) MutationWatch
}
