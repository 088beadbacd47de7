// Package dispatcher routes named actions to their handlers, running the
// shared pre- and post-dispatch hooks around each one.
package dispatcher

import (
	"sync"

	"github.com/rectmode/rectmode/internal/dispatcher/execctx"
	"github.com/rectmode/rectmode/internal/dispatcher/handler"
	"github.com/rectmode/rectmode/internal/input"
)

// PreDispatchHook runs before an action is dispatched. Returning false
// cancels the dispatch.
type PreDispatchHook func(action *input.Action, ctx *execctx.ExecutionContext) bool

// PostDispatchHook runs after an action is dispatched and may inspect or
// amend the result.
type PostDispatchHook func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// Dispatcher routes actions through the registry.
type Dispatcher struct {
	mu        sync.RWMutex
	registry  *Registry
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a dispatcher over a registry.
func New(registry *Registry) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Dispatcher{registry: registry}
}

// Registry returns the dispatcher's registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// AddPreHook appends a pre-dispatch hook.
func (d *Dispatcher) AddPreHook(h PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, h)
}

// AddPostHook appends a post-dispatch hook.
func (d *Dispatcher) AddPostHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, h)
}

// Dispatch executes an action. Unknown actions report an error result; a
// cancelled dispatch reports a no-op.
func (d *Dispatcher) Dispatch(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	d.mu.RLock()
	pre := d.preHooks
	post := d.postHooks
	d.mu.RUnlock()

	for _, hook := range pre {
		if !hook(&action, ctx) {
			return handler.NoOpWithMessage("dispatch cancelled")
		}
	}

	var result handler.Result
	if h := d.registry.Get(action.Name); h != nil {
		ctx.Count = action.Count
		result = h.Handle(action, ctx)
	} else {
		result = handler.Errorf("no handler for action %q", action.Name)
	}

	for _, hook := range post {
		hook(&action, ctx, &result)
	}
	return result
}
