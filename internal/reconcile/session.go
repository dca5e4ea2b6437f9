package reconcile

import (
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/inkwell/internal/engine/content"
	"github.com/dshills/inkwell/internal/engine/state"
)

// span is a code-point range inside one block.
type span struct {
	key        string
	start, end int
}

func (r span) len() int { return r.end - r.start }

// touches reports whether r and o overlap or share an edge.
func (r span) touches(o span) bool {
	return r.key == o.key && r.start <= o.end && o.start <= r.end
}

func (r span) union(o span) span {
	return span{key: r.key, start: min(r.start, o.start), end: max(r.end, o.end)}
}

// locate finds the last occurrence of text that lies before caret in b.
// Without one it falls back to the longest word-initial run ending at
// caret that text starts with, which covers a word the host recomposes
// in one update. Without either the result is the collapsed caret.
func locate(b *content.Block, caret int, text string) span {
	caretSpan := span{key: b.Key(), start: caret, end: caret}
	if text == "" || caret > b.Len() {
		return caretSpan
	}
	before := b.SliceRunes(0, caret)
	prefix := string(before)
	if i := strings.LastIndex(prefix, text); i >= 0 {
		start := utf8.RuneCountInString(prefix[:i])
		return span{key: b.Key(), start: start, end: start + utf8.RuneCountInString(text)}
	}
	want := []rune(text)
	for n := min(len(want)-1, len(before)); n > 0; n-- {
		start := len(before) - n
		if start > 0 && isWordRune(before[start-1]) {
			continue
		}
		if slices.Equal(before[start:], want[:n]) {
			return span{key: b.Key(), start: caret - n, end: caret}
		}
	}
	return caretSpan
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// stripNewlines removes line breaks, which never belong to composed text.
func stripNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

// session holds everything one composition tracks between start and
// commit.
type session struct {
	baseline *state.EditorState
	caret    int
	rng      span

	// tracked is the model text inside rng; reported is the latest text
	// from the host.
	tracked  string
	reported string

	frozen      bool
	hasMutation bool

	watch        MutationWatch
	host         HostRange
	lastActivity time.Time
}

// covers reports whether a host caret lies inside the text being composed.
func (s *session) covers(key string, offset int) bool {
	if key != s.rng.key {
		return false
	}
	reach := max(s.rng.len(), utf8.RuneCountInString(s.reported))
	return offset >= s.rng.start && offset <= s.rng.start+reach
}

func (s *session) retrack() {
	b, ok := s.baseline.Content().Block(s.rng.key)
	if !ok {
		s.tracked = ""
		return
	}
	s.tracked = string(b.SliceRunes(s.rng.start, s.rng.end))
}

// SessionInfo describes the active composition session.
type SessionInfo struct {
	BlockKey    string
	Start       int
	End         int
	Tracked     string
	Reported    string
	Frozen      bool
	HasMutation bool
}
