// Package mode provides the modal layer: a manager coordinating mode
// transitions and the rectangle mode itself.
package mode

import "github.com/rectmode/rectmode/internal/dispatcher/execctx"

// Standard mode names.
const (
	ModeNormal    = "normal"
	ModeRectangle = "rectangle"
)

// Mode defines the interface for editor modes. Each mode determines how
// input is interpreted while it is active.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "rectangle").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// Enter is called when entering this mode.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	Exit(ctx *Context) error
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string

	// Exec is the execution context of the focused buffer.
	Exec *execctx.ExecutionContext
}

// NewContext creates a mode context around an execution context.
func NewContext(exec *execctx.ExecutionContext) *Context {
	return &Context{Exec: exec}
}
