package app

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
	"github.com/dshills/inkwell/internal/reconcile"
)

type fixture struct {
	editor  *Editor
	host    *reconcile.MemoryHost
	clock   *reconcile.ManualClock
	metrics *Metrics
}

// newFixture creates an editor over a single block "a" holding text with
// sel selected.
func newFixture(t *testing.T, text string, sel selection.Selection) *fixture {
	t.Helper()
	c, err := content.New([]*content.Block{content.NewTextBlock("a", text)}, content.EntityMap{})
	require.NoError(t, err)
	s := state.New(c, state.WithSelection(sel))

	f := &fixture{
		host:    reconcile.NewMemoryHost(c, nil),
		clock:   reconcile.NewManualClock(time.Unix(1000, 0)),
		metrics: NewMetrics(prometheus.NewRegistry()),
	}
	f.editor = NewEditor(s, f.host,
		WithLogger(NullLogger()),
		WithMetrics(f.metrics),
		WithClock(f.clock),
	)
	return f
}

func (f *fixture) dispatch(t *testing.T, ev Event) {
	t.Helper()
	require.NoError(t, f.editor.Dispatch(ev))
}

func (f *fixture) text() string {
	b, ok := f.editor.State().Content().Block("a")
	if !ok {
		return "<missing>"
	}
	return b.Text()
}

func (f *fixture) rebuilds() int {
	n := 0
	for _, cmd := range f.host.Log() {
		if cmd.Kind == reconcile.CommandRebuild {
			n++
		}
	}
	return n
}
