package mode

// NormalMode is the default mode: plain cursor movement, no selection.
type NormalMode struct{}

// NewNormalMode creates a new normal mode instance.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns the mode identifier.
func (m *NormalMode) Name() string {
	return ModeNormal
}

// DisplayName returns the human-readable mode name.
func (m *NormalMode) DisplayName() string {
	return "NORMAL"
}

// Enter is called when entering normal mode.
func (m *NormalMode) Enter(ctx *Context) error {
	return nil
}

// Exit is called when leaving normal mode.
func (m *NormalMode) Exit(ctx *Context) error {
	return nil
}
