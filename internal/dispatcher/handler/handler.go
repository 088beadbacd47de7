// Package handler provides the handler interface and result types for
// action dispatch.
package handler

import (
	"github.com/rectmode/rectmode/internal/dispatcher/execctx"
	"github.com/rectmode/rectmode/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// Func is a function adapter for the Handler interface. It reports every
// action as handleable; the caller must ensure correct routing.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle implements Handler.Handle.
func (f Func) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}

// CanHandle implements Handler.CanHandle.
func (f Func) CanHandle(actionName string) bool {
	return true
}
