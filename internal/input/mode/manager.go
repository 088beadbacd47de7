package mode

import (
	"fmt"
	"sync"
)

// Manager manages editor modes and coordinates mode transitions.
type Manager struct {
	mu sync.RWMutex

	// modes holds all registered modes by name.
	modes map[string]Mode

	// current is the active mode.
	current Mode

	// previous is the mode before the current one.
	previous Mode

	// modeStack allows pushing/popping modes.
	modeStack []Mode

	// context is reused for mode transitions.
	context *Context
}

// NewManager creates a mode manager whose transitions run against the
// given context.
func NewManager(ctx *Context) *Manager {
	if ctx == nil {
		ctx = &Context{}
	}
	return &Manager{
		modes:     make(map[string]Mode),
		modeStack: make([]Mode, 0, 4),
		context:   ctx,
	}
}

// Register adds a mode to the manager, replacing any mode with the same
// name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// Get returns a mode by name, or nil if not found.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Current returns the current mode, or nil if none is set.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the name of the current mode, or "" if none is set.
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// IsMode returns true if the current mode matches the given name.
func (m *Manager) IsMode(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.Name() == name
}

// Switch changes to a different mode. Calls Exit() on the current mode and
// Enter() on the new mode.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newMode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	return m.switchToLocked(newMode)
}

// switchToLocked performs the mode switch (must hold lock).
func (m *Manager) switchToLocked(newMode Mode) error {
	ctx := m.context
	oldMode := m.current

	if oldMode != nil {
		ctx.NextMode = newMode.Name()
		if err := oldMode.Exit(ctx); err != nil {
			return fmt.Errorf("exit %s: %w", oldMode.Name(), err)
		}
		ctx.PreviousMode = oldMode.Name()
	} else {
		ctx.PreviousMode = ""
	}
	ctx.NextMode = ""

	if err := newMode.Enter(ctx); err != nil {
		return fmt.Errorf("enter %s: %w", newMode.Name(), err)
	}

	m.previous = oldMode
	m.current = newMode
	return nil
}

// Push saves the current mode and switches to a new one. Use Pop to restore
// the saved mode.
func (m *Manager) Push(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newMode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	saved := m.current
	if err := m.switchToLocked(newMode); err != nil {
		return err
	}
	if saved != nil {
		m.modeStack = append(m.modeStack, saved)
	}
	return nil
}

// Pop restores the most recently pushed mode. Returns an error if the mode
// stack is empty.
func (m *Manager) Pop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.modeStack) == 0 {
		return fmt.Errorf("mode stack is empty")
	}
	restored := m.modeStack[len(m.modeStack)-1]
	m.modeStack = m.modeStack[:len(m.modeStack)-1]
	return m.switchToLocked(restored)
}

// StackDepth returns the number of modes on the stack.
func (m *Manager) StackDepth() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.modeStack)
}

// SetInitialMode sets the initial mode without an exit transition. Should
// only be called once during initialization.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	m.current = mode
	m.context.PreviousMode = ""
	return mode.Enter(m.context)
}
