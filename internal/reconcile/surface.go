package reconcile

import (
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/state"
)

// Surface tracks what the host displays and sends it only the commands a
// new state requires.
type Surface struct {
	host     Host
	observer Observer

	shown *content.Content
	last  *state.EditorState
	dirty bool
}

// NewSurface creates a surface for a host that currently displays shown.
// A nil observer is allowed.
func NewSurface(host Host, shown *content.Content, observer Observer) *Surface {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Surface{host: host, shown: shown, observer: observer}
}

// Host returns the host surface.
func (v *Surface) Host() Host { return v.host }

// Shown returns the content the host displays.
func (v *Surface) Shown() *content.Content { return v.shown }

// Invalidate marks the host rendering as untrusted. The next Render
// rebuilds it even if the content did not change.
func (v *Surface) Invalidate() { v.dirty = true }

// Render brings the host in line with s. The host is rebuilt when s holds
// content it does not display and has not rendered natively. The model
// selection is applied after a rebuild or when s forces it. Rendering the
// same state twice is a no-op. It reports whether a rebuild happened.
func (v *Surface) Render(s *state.EditorState) bool {
	if s == v.last && !v.dirty {
		return false
	}
	v.last = s

	rebuilt := false
	if v.dirty || s.Content() != v.shown {
		if v.dirty || !s.IsNativelyRendered() {
			v.host.Rebuild(s.Content())
			v.observer.HostRebuilt()
			rebuilt = true
		}
		v.shown = s.Content()
		v.dirty = false
	}
	if rebuilt || s.MustForceSelection() {
		v.host.ApplySelection(s.Selection())
	}
	return rebuilt
}
