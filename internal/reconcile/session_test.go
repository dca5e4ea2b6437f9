package reconcile

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/content"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		caret      int
		composing  string
		start, end int
	}{
		{name: "full occurrence", text: "say Hello", caret: 9, composing: "Hello", start: 4, end: 9},
		{name: "last occurrence wins", text: "ab ab", caret: 5, composing: "ab", start: 3, end: 5},
		{name: "word recomposed", text: "Hel", caret: 3, composing: "Hello", start: 0, end: 3},
		{name: "word after space", text: "say Hel", caret: 7, composing: "Hello", start: 4, end: 7},
		{name: "word after punctuation", text: "(Hel", caret: 4, composing: "Hello", start: 1, end: 4},
		{name: "suffix inside a word", text: "Hel", caret: 3, composing: "lo", start: 3, end: 3},
		{name: "no overlap", text: "abc", caret: 3, composing: "xyz", start: 3, end: 3},
		{name: "caret mid block", text: "Helxx", caret: 3, composing: "Hello", start: 0, end: 3},
		{name: "empty text", text: "abc", caret: 2, composing: "", start: 2, end: 2},
		{name: "non-ascii", text: "über", caret: 4, composing: "überall", start: 0, end: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := content.NewTextBlock("a", tt.text)
			got := locate(b, tt.caret, tt.composing)
			want := span{key: "a", start: tt.start, end: tt.end}
			if got != want {
				t.Errorf("locate(%q, %d, %q) = %+v, want %+v", tt.text, tt.caret, tt.composing, got, want)
			}
		})
	}
}
