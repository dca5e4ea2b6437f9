package mode

import (
	"fmt"
	"sync"
)

// Manager tracks the current mode and coordinates transitions.
type Manager struct {
	mu sync.RWMutex

	current  Mode
	previous Mode

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// ChangeCallback is called when the mode changes.
type ChangeCallback func(from, to Mode)

// NewManager creates a manager in Edit mode.
func NewManager() *Manager {
	return &Manager{current: Edit, previous: Edit}
}

// Current returns the current mode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the mode before the current one.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Is reports whether the current mode is mode.
func (m *Manager) Is(mode Mode) bool {
	return m.Current() == mode
}

// Switch changes to mode. Switching to the current mode is a no-op; any
// other transition not allowed by CanTransition is an error.
func (m *Manager) Switch(to Mode) error {
	m.mu.Lock()

	from := m.current
	if from == to {
		m.mu.Unlock()
		return nil
	}
	if !CanTransition(from, to) {
		m.mu.Unlock()
		return fmt.Errorf("invalid mode transition: %s -> %s", from, to)
	}
	m.previous = from
	m.current = to

	// Copy callbacks to call outside of lock
	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
	return nil
}

// Reset returns to Edit from any mode.
func (m *Manager) Reset() {
	if m.Current() != Edit {
		_ = m.Switch(Edit)
	}
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}
