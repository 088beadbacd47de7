package mode

// RectangleMode is the rectangle selection mode. Entering starts a fresh
// zero-size rectangle at the cursor; exiting stashes the selection so a
// later restore can reactivate it.
type RectangleMode struct {
	// count holds the numeric prefix for the next command.
	count int
}

// NewRectangleMode creates a new rectangle mode instance.
func NewRectangleMode() *RectangleMode {
	return &RectangleMode{}
}

// Name returns the mode identifier.
func (m *RectangleMode) Name() string {
	return ModeRectangle
}

// DisplayName returns the human-readable mode name.
func (m *RectangleMode) DisplayName() string {
	return "RECT"
}

// Enter restarts the rectangle at the cursor position.
func (m *RectangleMode) Enter(ctx *Context) error {
	m.count = 0
	if ctx.Exec != nil && ctx.Exec.Rect != nil {
		ctx.Exec.Rect.Restart(ctx.Exec.Cursor)
	}
	return nil
}

// Exit stashes and deactivates the selection.
func (m *RectangleMode) Exit(ctx *Context) error {
	m.count = 0
	if ctx.Exec != nil && ctx.Exec.Rect != nil {
		ctx.Exec.Rect.Deactivate()
	}
	return nil
}

// HandleRune accumulates count-prefix digits. Returns true when the rune
// was consumed as part of a count.
func (m *RectangleMode) HandleRune(r rune) bool {
	if r >= '1' && r <= '9' {
		m.count = m.count*10 + int(r-'0')
		return true
	}
	if r == '0' && m.count > 0 {
		m.count = m.count * 10
		return true
	}
	return false
}

// Count returns the current count prefix, defaulting to 1.
func (m *RectangleMode) Count() int {
	if m.count == 0 {
		return 1
	}
	return m.count
}

// TakeCount returns the raw accumulated count (0 when absent) and clears
// it, the shape a dispatch consumes.
func (m *RectangleMode) TakeCount() int {
	c := m.count
	m.count = 0
	return c
}

// HasCount returns true if a count prefix is pending.
func (m *RectangleMode) HasCount() bool {
	return m.count > 0
}
