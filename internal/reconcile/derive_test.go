package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/engine/blocktree"
	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/selection"
	"github.com/dshills/inkwell/internal/engine/state"
)

type probeFunc func(node string) (string, bool)

func (f probeFunc) Probe(node string) (string, bool) { return f(node) }

// boldHello is "Hello world" with "Hello" bold, so block "a" renders as
// two leaves: [0,5) and [5,11).
func boldHello(t *testing.T) (*state.EditorState, *MemoryHost) {
	t.Helper()
	bold := content.NewStyleSet("BOLD")
	chars := make([]content.CharMeta, 11)
	for i := 0; i < 5; i++ {
		chars[i].Style = bold
	}
	a, err := content.NewBlock("a", content.Unstyled, "Hello world", chars, 0, nil)
	require.NoError(t, err)
	c, err := content.New([]*content.Block{a, content.NewTextBlock("b", "second")}, content.EntityMap{})
	require.NoError(t, err)
	return state.New(c), NewMemoryHost(c, nil)
}

func TestDeriveSelectionAcrossLeaves(t *testing.T) {
	s, host := boldHello(t)

	anchor, ok := host.Point("a", 1)
	require.True(t, ok)
	focus, ok := host.Point("a", 7)
	require.True(t, ok)
	assert.Equal(t, HostPoint{Node: "a-0-1", Offset: 2}, focus)

	d := DeriveSelection(s, host, HostRange{Anchor: anchor, Focus: focus})
	require.False(t, d.NeedsRecovery)
	assert.NoError(t, d.Err)
	assert.Equal(t, selection.New("a", 1, "a", 7, false).WithFocus(true), d.Selection)
}

func TestDeriveSelectionBackwardAcrossBlocks(t *testing.T) {
	s, host := boldHello(t)

	d := DeriveSelection(s, host, host.Range("b", 3, "a", 2))
	require.False(t, d.NeedsRecovery)
	assert.True(t, d.Selection.IsBackward())
	assert.Equal(t, "a", d.Selection.StartKey())
	assert.Equal(t, 2, d.Selection.StartOffset())
	assert.Equal(t, "b", d.Selection.EndKey())
	assert.Equal(t, 3, d.Selection.EndOffset())
}

func TestDeriveSelectionFailures(t *testing.T) {
	s, _ := boldHello(t)
	good := HostPoint{Node: "a-0-1", Offset: 1}

	tests := []struct {
		name    string
		probe   Prober
		point   HostPoint
		wantErr error
	}{
		{
			name:    "unknown node",
			probe:   probeFunc(func(n string) (string, bool) { return n, n == good.Node }),
			point:   HostPoint{Node: "ghost"},
			wantErr: ErrUnknownNode,
		},
		{
			name:    "malformed offset key",
			probe:   probeFunc(func(n string) (string, bool) { return n, true }),
			point:   HostPoint{Node: "garbage"},
			wantErr: blocktree.ErrMalformedOffsetKey,
		},
		{
			name:    "unknown block",
			probe:   probeFunc(func(n string) (string, bool) { return n, true }),
			point:   HostPoint{Node: "zz-0-0"},
			wantErr: ErrUnknownBlock,
		},
		{
			name:    "stale leaf",
			probe:   probeFunc(func(n string) (string, bool) { return n, true }),
			point:   HostPoint{Node: "a-0-4"},
			wantErr: ErrStaleLeaf,
		},
		{
			name:    "offset beyond leaf",
			probe:   probeFunc(func(n string) (string, bool) { return n, true }),
			point:   HostPoint{Node: "a-0-0", Offset: 6},
			wantErr: ErrOffsetOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DeriveSelection(s, tt.probe, HostRange{Anchor: good, Focus: tt.point})
			require.True(t, d.NeedsRecovery)
			assert.ErrorIs(t, d.Err, tt.wantErr)
			assert.Equal(t, selection.Collapsed("a", 6).WithFocus(true), d.Selection, "falls back to the resolved point")
		})
	}
}

func TestDeriveSelectionFallsBackToModel(t *testing.T) {
	s, host := boldHello(t)
	s = state.AcceptSelection(s, selection.Collapsed("b", 2))

	d := DeriveSelection(s, host, HostCaret(HostPoint{Node: "ghost"}))
	assert.True(t, d.NeedsRecovery)
	assert.Equal(t, selection.Collapsed("b", 2), d.Selection)
}

func TestDeriveSelectionAfterRebuildSeesNewLeaves(t *testing.T) {
	s, host := boldHello(t)
	stale, _ := host.Point("a", 7)

	plain := state.New(content.FromText("Hello world"))
	host.Rebuild(plain.Content())

	d := DeriveSelection(s, host, HostCaret(stale))
	assert.True(t, d.NeedsRecovery)
	assert.ErrorIs(t, d.Err, ErrUnknownNode)
}

func TestSyncSelection(t *testing.T) {
	s, host := boldHello(t)

	t.Run("agreeing host", func(t *testing.T) {
		d := DeriveSelection(s, host, host.Caret("a", 0))
		once := SyncSelection(s, d)
		assert.NotSame(t, s, once, "focus flag changes")
		assert.Same(t, once, SyncSelection(once, d))
	})

	t.Run("accept", func(t *testing.T) {
		d := DeriveSelection(s, host, host.Caret("b", 4))
		ns := SyncSelection(s, d)
		assert.Equal(t, 4, ns.Selection().AnchorOffset())
		assert.False(t, ns.MustForceSelection())
	})

	t.Run("recover", func(t *testing.T) {
		d := DeriveSelection(s, host, HostRange{Anchor: HostPoint{Node: "ghost"}, Focus: HostPoint{Node: "a-0-1", Offset: 1}})
		ns := SyncSelection(s, d)
		assert.True(t, ns.MustForceSelection())
		assert.Equal(t, selection.Collapsed("a", 6).WithFocus(true), ns.Selection())
	})
}
