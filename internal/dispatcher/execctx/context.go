// Package execctx provides the execution context action handlers run
// against: the rectangle context, the external collaborators, and the
// invocation state.
package execctx

import (
	"errors"

	"github.com/rectmode/rectmode/internal/calc"
	"github.com/rectmode/rectmode/internal/engine/buffer"
	"github.com/rectmode/rectmode/internal/event"
	"github.com/rectmode/rectmode/internal/rect"
)

// Errors reported when a handler is invoked without a collaborator it
// requires.
var (
	ErrMissingRect  = errors.New("execution context has no rectangle context")
	ErrMissingPlace = errors.New("no multi-cursor collaborator available")
)

// CursorPlacer is the multi-cursor collaborator at its boundary: given a
// column and a line range, it places one edit cursor per line at that
// column. Activating it deactivates the rectangular selection, which is why
// the core stashes first.
type CursorPlacer interface {
	Place(column, startLine, endLine int)
}

// Register is the external block clipboard boundary: storage for the most
// recently cut or copied rectangle.
type Register interface {
	SetBlock(block rect.LineBlock)
	Block() (rect.LineBlock, bool)
}

// ExecutionContext carries everything a handler needs for one dispatch.
type ExecutionContext struct {
	// Rect is the rectangle context of the focused buffer.
	Rect *rect.Context

	// Machine is the external matrix machine, if one is attached.
	Machine calc.Machine

	// Loop is where deferred reactivation is posted.
	Loop *event.Loop

	// Placer is the multi-cursor collaborator, if one is attached.
	Placer CursorPlacer

	// Registers is the block clipboard, if one is attached.
	Registers Register

	// Cursor is the host's point position, used by operations that start
	// fresh from it.
	Cursor buffer.Point

	// Count is the effective repeat count for this dispatch (0 = absent).
	Count int

	// FastStep is the multiple applied by the fast shift variants.
	FastStep int

	// FillWidth is the default reflow width when no count is given.
	FillWidth int

	// CalcFormat controls how the machine's values are printed, both when
	// yanked into the buffer and when shown as a message.
	CalcFormat calc.Format
}

// GetCount returns the effective count, defaulting to 1.
func (c *ExecutionContext) GetCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// Buffer returns the focused buffer, or nil when no rectangle context is
// attached.
func (c *ExecutionContext) Buffer() *buffer.Buffer {
	if c.Rect == nil {
		return nil
	}
	return c.Rect.Buffer()
}
