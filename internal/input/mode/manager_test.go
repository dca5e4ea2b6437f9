package mode

import "testing"

func TestManagerStartsInEdit(t *testing.T) {
	m := NewManager()
	if m.Current() != Edit {
		t.Errorf("Current() = %v, want edit", m.Current())
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewManager()

	if err := m.Switch(Composing); err != nil {
		t.Fatalf("Switch(composing) error = %v", err)
	}
	if !m.Is(Composing) {
		t.Errorf("Current() = %v, want composing", m.Current())
	}
	if m.Previous() != Edit {
		t.Errorf("Previous() = %v, want edit", m.Previous())
	}

	if err := m.Switch(Cut); err == nil {
		t.Error("Switch(composing -> cut) should fail")
	}
	if !m.Is(Composing) {
		t.Error("failed switch must not change the mode")
	}

	if err := m.Switch(Composing); err != nil {
		t.Errorf("Switch to current mode should be a no-op, got %v", err)
	}
}

func TestManagerCallbacks(t *testing.T) {
	m := NewManager()

	var changes [][2]Mode
	unregister := m.OnChange(func(from, to Mode) {
		changes = append(changes, [2]Mode{from, to})
	})

	_ = m.Switch(Dragging)
	m.Reset()
	unregister()
	_ = m.Switch(Cut)

	want := [][2]Mode{{Edit, Dragging}, {Dragging, Edit}}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d: %v", len(changes), len(want), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestManagerResetFromEdit(t *testing.T) {
	m := NewManager()
	called := false
	m.OnChange(func(from, to Mode) { called = true })

	m.Reset()
	if called {
		t.Error("Reset in edit mode should not notify")
	}
}
