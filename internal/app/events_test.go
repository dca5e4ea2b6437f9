package app

import "testing"

func TestEventKindNames(t *testing.T) {
	for k := range EventKindCount {
		kind := EventKind(k)
		name := kind.String()
		if name == "" || name == "unknown" {
			t.Errorf("event %d has no name", k)
			continue
		}
		parsed, ok := ParseEventKind(name)
		if !ok || parsed != kind {
			t.Errorf("ParseEventKind(%q) = %v, %v", name, parsed, ok)
		}
	}

	if EventKind(EventKindCount).Valid() {
		t.Error("EventKindCount should not be valid")
	}
	if EventKind(EventKindCount).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
	if _, ok := ParseEventKind("keypress"); ok {
		t.Error("unexpected kind parsed")
	}
}
