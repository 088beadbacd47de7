// Package rectops registers the rectangle and matrix-exchange operations
// with the dispatcher. Every operation is invokable by name with a single
// numeric-or-absent count; stash-before and reactivate-after behavior is
// applied uniformly by the op table, not per handler.
package rectops

import (
	"errors"
	"fmt"

	"github.com/rectmode/rectmode/internal/calc"
	"github.com/rectmode/rectmode/internal/dispatcher"
	"github.com/rectmode/rectmode/internal/dispatcher/execctx"
	"github.com/rectmode/rectmode/internal/dispatcher/handler"
	"github.com/rectmode/rectmode/internal/input"
	"github.com/rectmode/rectmode/internal/rect"
)

// DefaultFastStep is the shift multiple applied by the fast variants when
// the execution context carries none.
const DefaultFastStep = 5

// DefaultFillWidth is the reflow width used when neither a count nor a
// configured width is present.
const DefaultFillWidth = 70

// opFunc is the body of one operation, running after the uniform wrapping.
type opFunc func(action input.Action, ctx *execctx.ExecutionContext) handler.Result

// opSpec is one row of the op table.
type opSpec struct {
	name string
	fn   opFunc

	// stashBefore records the active rectangle as LastRectangle before
	// the body runs, for operations that end or hand off the selection.
	stashBefore bool

	// reactivateAfter ends the selection after a successful mutation and
	// posts its reactivation to the event loop. Buffer edits deactivate a
	// transient selection in the host; reactivation is deferred so it
	// lands after the host has processed the edit, never inline.
	reactivateAfter bool
}

// Register installs every operation in the registry.
func Register(reg *dispatcher.Registry) {
	for _, op := range table() {
		reg.Register(op.name, wrap(op))
	}
}

func table() []opSpec {
	return []opSpec{
		{name: "rect.shiftLeft", fn: shiftColumns(-1, false)},
		{name: "rect.shiftRight", fn: shiftColumns(1, false)},
		{name: "rect.shiftLeftFast", fn: shiftColumns(-1, true)},
		{name: "rect.shiftRightFast", fn: shiftColumns(1, true)},
		{name: "rect.shiftUp", fn: shiftRows(-1, false)},
		{name: "rect.shiftDown", fn: shiftRows(1, false)},
		{name: "rect.shiftUpFast", fn: shiftRows(-1, true)},
		{name: "rect.shiftDownFast", fn: shiftRows(1, true)},
		{name: "rect.cycleCorner", fn: cycleCorner},
		{name: "rect.restart", fn: restart},
		{name: "rect.restoreLast", fn: restoreLast},
		{name: "rect.trimWhitespace", fn: trimWhitespace, reactivateAfter: true},
		{name: "rect.string", fn: stringRect, reactivateAfter: true},
		{name: "rect.open", fn: openRect, reactivateAfter: true},
		{name: "rect.clear", fn: clearRect, reactivateAfter: true},
		{name: "rect.fill", fn: fill, reactivateAfter: true},
		{name: "rect.cut", fn: cut, stashBefore: true},
		{name: "rect.copy", fn: copyRect, stashBefore: true},
		{name: "rect.paste", fn: paste},
		{name: "rect.multiCursor", fn: multiCursor, stashBefore: true},
		{name: "calc.grab", fn: grab},
		{name: "calc.grabSumRows", fn: grabSumRows},
		{name: "calc.grabSumColumns", fn: grabSumColumns},
		{name: "calc.yank", fn: yank, reactivateAfter: true},
		{name: "calc.show", fn: show},
	}
}

// wrap applies the table flags around the operation body. Every operation
// requires a rectangle context; the flags only act when a rectangle is
// active, and never turn a failed body into a mutation.
func wrap(op opSpec) handler.Handler {
	return handler.Func(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if ctx == nil || ctx.Rect == nil {
			return handler.Error(execctx.ErrMissingRect)
		}
		if op.stashBefore {
			if _, ok := ctx.Rect.Active(); ok {
				if err := ctx.Rect.Stash(); err != nil {
					return handler.Error(err)
				}
			}
		}
		result := op.fn(action, ctx)
		if op.reactivateAfter && result.IsOK() {
			if _, ok := ctx.Rect.Active(); ok {
				ctx.Rect.Deactivate()
				if ctx.Loop != nil {
					rc := ctx.Rect
					ctx.Loop.Post(func() { _, _ = rc.RestoreLast() })
				} else {
					_, _ = ctx.Rect.RestoreLast()
				}
			}
		}
		return result
	})
}

func fastStep(ctx *execctx.ExecutionContext) int {
	if ctx.FastStep > 0 {
		return ctx.FastStep
	}
	return DefaultFastStep
}

func shiftColumns(dir int, fast bool) opFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		r, ok := ctx.Rect.Active()
		if !ok {
			return handler.Error(rect.ErrNoRectangle)
		}
		n := ctx.GetCount()
		if fast {
			n *= fastStep(ctx)
		}
		ctx.Rect.SetActive(r.ShiftColumns(dir * n))
		return handler.Success()
	}
}

func shiftRows(dir int, fast bool) opFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		r, ok := ctx.Rect.Active()
		if !ok {
			return handler.Error(rect.ErrNoRectangle)
		}
		n := ctx.GetCount()
		if fast {
			n *= fastStep(ctx)
		}
		ctx.Rect.SetActive(r.ShiftRows(ctx.Buffer(), dir*n))
		return handler.Success()
	}
}

func cycleCorner(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	r, ok := ctx.Rect.Active()
	if !ok {
		return handler.Error(rect.ErrNoRectangle)
	}
	ctx.Rect.SetActive(r.CycleCorner())
	return handler.Success()
}

func restart(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.Rect.Restart(ctx.Cursor)
	return handler.Success()
}

func restoreLast(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if _, err := ctx.Rect.RestoreLast(); err != nil {
		if errors.Is(err, rect.ErrNoStoredRectangle) {
			return handler.NoOpWithMessage("no rectangle to restore")
		}
		return handler.Error(err)
	}
	return handler.Success()
}

func trimWhitespace(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	profile, err := ctx.Rect.TrimWhitespace()
	if err != nil {
		return handler.Error(err)
	}
	if profile.MinLeft == 0 {
		return handler.NoOpWithMessage("no shared left padding")
	}
	return handler.SuccessWithMessage(fmt.Sprintf("trimmed %d columns of left padding", profile.MinLeft))
}

func stringRect(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Rect.StringRectangle(action.Text); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func openRect(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Rect.OpenRectangle(); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func clearRect(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Rect.ClearRectangle(); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func fill(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	r, ok := ctx.Rect.Active()
	if !ok {
		return handler.Error(rect.ErrNoRectangle)
	}
	width := ctx.Count
	if width <= 0 {
		width = ctx.FillWidth
	}
	if width <= 0 {
		width = DefaultFillWidth
	}
	filled, err := rect.Fill(ctx.Buffer(), r, width)
	if err != nil {
		return handler.Error(err)
	}
	ctx.Rect.SetActive(filled)
	return handler.Success()
}

func cut(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Registers == nil {
		return handler.Errorf("no block register available")
	}
	r, ok := ctx.Rect.Active()
	if !ok {
		return handler.Error(rect.ErrNoRectangle)
	}
	block, err := rect.CutBlock(ctx.Buffer(), r)
	if err != nil {
		return handler.Error(err)
	}
	ctx.Registers.SetBlock(block)
	return handler.Success()
}

func copyRect(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Registers == nil {
		return handler.Errorf("no block register available")
	}
	r, ok := ctx.Rect.Active()
	if !ok {
		return handler.Error(rect.ErrNoRectangle)
	}
	ctx.Registers.SetBlock(rect.ReadBlock(ctx.Buffer(), r))
	return handler.Success()
}

func paste(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Registers == nil {
		return handler.Errorf("no block register available")
	}
	block, ok := ctx.Registers.Block()
	if !ok {
		return handler.NoOpWithMessage("block register is empty")
	}
	if err := rect.PasteBlock(ctx.Buffer(), ctx.Cursor, block); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func multiCursor(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Placer == nil {
		return handler.Error(execctx.ErrMissingPlace)
	}
	r, ok := ctx.Rect.Active()
	if !ok {
		return handler.Error(rect.ErrNoRectangle)
	}
	top, left, bottom, _ := r.Bounds()
	ctx.Placer.Place(left, top, bottom)
	ctx.Rect.Deactivate()
	return handler.Success()
}

func grab(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := calc.Grab(ctx.Rect, ctx.Machine); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func grabSumRows(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := calc.GrabSumRows(ctx.Rect, ctx.Machine); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func grabSumColumns(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := calc.GrabSumColumns(ctx.Rect, ctx.Machine); err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}

func yank(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	diag, err := calc.Yank(ctx.Rect, ctx.Machine, ctx.CalcFormat.Precision)
	if err != nil {
		return handler.Error(err)
	}
	if msg := diag.Message(); msg != "" {
		return handler.SuccessWithMessage(msg)
	}
	return handler.Success()
}

// show prints the machine's top-of-stack value as a message, using the
// configured display format. Unlike yank it never touches the buffer, so
// bracket and vector-expansion settings apply as-is.
func show(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Machine == nil {
		return handler.Error(calc.ErrNoMachine)
	}
	text, err := ctx.Machine.TopAsText(ctx.CalcFormat)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(text)
}
