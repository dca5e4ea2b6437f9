package reconcile

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
)

type commit struct {
	cause   Cause
	outcome Outcome
}

type recorder struct {
	commits    []commit
	rebuilds   int
	recoveries int
}

func (r *recorder) CompositionCommitted(cause Cause, outcome Outcome) {
	r.commits = append(r.commits, commit{cause, outcome})
}
func (r *recorder) HostRebuilt()        { r.rebuilds++ }
func (r *recorder) SelectionRecovered() { r.recoveries++ }

type fixture struct {
	host     *MemoryHost
	surface  *Surface
	composer *Composer
	clock    *ManualClock
	rec      *recorder
}

// newFixture creates a single block "a" holding text with the caret at
// its end.
func newFixture(t *testing.T, text string) (*state.EditorState, *fixture) {
	t.Helper()
	c, err := content.New([]*content.Block{content.NewTextBlock("a", text)}, content.EntityMap{})
	require.NoError(t, err)
	s := state.New(c, state.WithSelection(selection.Collapsed("a", len([]rune(text)))))

	f := &fixture{rec: &recorder{}, clock: NewManualClock(time.Unix(1000, 0))}
	f.host = NewMemoryHost(c, nil)
	f.surface = NewSurface(f.host, c, f.rec)
	f.composer = NewComposer(f.surface,
		WithClock(f.clock),
		WithObserver(f.rec),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return s, f
}

func blockText(s *state.EditorState, key string) string {
	b, ok := s.Content().Block(key)
	if !ok {
		return "<missing>"
	}
	return b.Text()
}
