package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapsed(t *testing.T) {
	s := Collapsed("a", 3)
	assert.True(t, s.IsCollapsed())
	assert.False(t, s.IsBackward())
	assert.Equal(t, Point{Key: "a", Offset: 3}, s.Start())
	assert.Equal(t, s.Start(), s.End())
	assert.False(t, s.IsZero())
	assert.True(t, Selection{}.IsZero())
}

func TestStartEndFollowDirection(t *testing.T) {
	forward := New("a", 1, "b", 4, false)
	assert.Equal(t, "a", forward.StartKey())
	assert.Equal(t, 4, forward.EndOffset())

	backward := New("b", 4, "a", 1, true)
	assert.Equal(t, "a", backward.StartKey())
	assert.Equal(t, 1, backward.StartOffset())
	assert.Equal(t, "b", backward.EndKey())
	assert.True(t, forward.SameRange(backward))
	assert.False(t, forward.Equals(backward))
}

func TestExtendTo(t *testing.T) {
	s := Collapsed("a", 2).ExtendTo("a", 0, true)
	assert.True(t, s.IsBackward())
	assert.Equal(t, 0, s.StartOffset())

	back := s.ExtendTo("a", 2, true)
	assert.True(t, back.IsCollapsed())
	assert.False(t, back.IsBackward())
}

func TestCollapseKeepsFocus(t *testing.T) {
	s := New("a", 1, "a", 5, false).WithFocus(true)

	start := s.CollapseToStart()
	assert.Equal(t, Point{Key: "a", Offset: 1}, start.Focus())
	assert.True(t, start.HasFocus())

	end := s.CollapseToEnd()
	assert.Equal(t, 5, end.AnchorOffset())
	assert.True(t, end.MoveTo("b", 0).HasFocus())
}

func TestHasEdgeWithin(t *testing.T) {
	s := New("a", 2, "b", 7, false)
	tests := []struct {
		key        string
		start, end int
		want       bool
	}{
		{"a", 0, 2, true},
		{"a", 3, 9, false},
		{"b", 7, 7, true},
		{"c", 0, 10, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.HasEdgeWithin(tt.key, tt.start, tt.end), "%s [%d,%d]", tt.key, tt.start, tt.end)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Caret(a:1)", Collapsed("a", 1).String())
	assert.Equal(t, "Selection(b:2←a:0)", New("b", 2, "a", 0, true).String())
}
