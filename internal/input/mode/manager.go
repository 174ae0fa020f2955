package mode

import (
	"fmt"
	"sync"
)

// Manager tracks the active mode and notifies listeners on change.
type Manager struct {
	mu sync.RWMutex

	// current is the active mode.
	current Mode

	// previous is the mode before the current one.
	previous Mode

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// ChangeCallback is called when the mode changes.
type ChangeCallback func(from, to Mode)

// NewManager creates a manager starting in the given mode.
func NewManager(initial Mode) *Manager {
	return &Manager{
		current:  initial,
		previous: initial,
	}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the mode that was active before the last switch.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Switch changes the active mode. Switching to the current mode is a
// no-op and does not notify callbacks.
func (m *Manager) Switch(to Mode) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, to)
	}

	m.mu.Lock()
	from := m.current
	if from == to {
		m.mu.Unlock()
		return nil
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

// Is returns true if the current mode is any of the given modes.
func (m *Manager) Is(modes ...Mode) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, md := range modes {
		if m.current == md {
			return true
		}
	}
	return false
}
