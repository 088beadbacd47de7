// Package script exposes the editing operations to Lua for scripted and
// batch rectangle editing.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/rectmode/rectmode/internal/dispatcher/handler"
	"github.com/rectmode/rectmode/internal/engine/buffer"
	"github.com/rectmode/rectmode/internal/input"
)

// Host is the editing session the script drives.
type Host interface {
	Dispatch(action input.Action) handler.Result
	Buffer() *buffer.Buffer
	SetCursor(p buffer.Point)
}

// Engine runs Lua scripts against a host. The state is sandboxed: no io,
// no os, no loading code from disk.
//
// gopher-lua's LState is not goroutine-safe; an Engine must be driven from
// a single goroutine.
type Engine struct {
	L    *lua.LState
	host Host
}

// NewEngine creates a sandboxed engine bound to a host.
func NewEngine(host Host) (*Engine, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	e := &Engine{L: L, host: host}
	if err := e.openSafeLibs(); err != nil {
		L.Close()
		return nil, err
	}
	e.installSandbox()
	e.installAPI()
	return e, nil
}

// openSafeLibs loads only the side-effect-free standard libraries.
func (e *Engine) openSafeLibs() error {
	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // must load first
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		if err := e.L.CallByParam(lua.P{
			Fn:      e.L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("opening lua lib %s: %w", lib.name, err)
		}
	}
	return nil
}

// installSandbox removes the escape hatches the base and package libraries
// leave open.
func (e *Engine) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		e.L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := e.L.GetGlobal("package").(*lua.LTable); ok {
		e.L.SetField(pkg, "path", lua.LString(""))
		e.L.SetField(pkg, "cpath", lua.LString(""))
	}
}

// actionBinding maps one Lua function to a dispatched action.
type actionBinding struct {
	luaName string
	action  string
	// takesText marks operations whose first argument is a string.
	takesText bool
}

var rectBindings = []actionBinding{
	{luaName: "shift_left", action: "rect.shiftLeft"},
	{luaName: "shift_right", action: "rect.shiftRight"},
	{luaName: "shift_up", action: "rect.shiftUp"},
	{luaName: "shift_down", action: "rect.shiftDown"},
	{luaName: "shift_left_fast", action: "rect.shiftLeftFast"},
	{luaName: "shift_right_fast", action: "rect.shiftRightFast"},
	{luaName: "shift_up_fast", action: "rect.shiftUpFast"},
	{luaName: "shift_down_fast", action: "rect.shiftDownFast"},
	{luaName: "cycle_corner", action: "rect.cycleCorner"},
	{luaName: "restart", action: "rect.restart"},
	{luaName: "restore_last", action: "rect.restoreLast"},
	{luaName: "trim_whitespace", action: "rect.trimWhitespace"},
	{luaName: "string", action: "rect.string", takesText: true},
	{luaName: "open", action: "rect.open"},
	{luaName: "clear", action: "rect.clear"},
	{luaName: "fill", action: "rect.fill"},
	{luaName: "cut", action: "rect.cut"},
	{luaName: "copy", action: "rect.copy"},
	{luaName: "paste", action: "rect.paste"},
	{luaName: "multi_cursor", action: "rect.multiCursor"},
}

var calcBindings = []actionBinding{
	{luaName: "grab", action: "calc.grab"},
	{luaName: "sum_rows", action: "calc.grabSumRows"},
	{luaName: "sum_columns", action: "calc.grabSumColumns"},
	{luaName: "yank", action: "calc.yank"},
	{luaName: "show", action: "calc.show"},
}

// installAPI publishes the rx table: rx.rect, rx.calc, rx.buffer, and
// rx.cursor.
func (e *Engine) installAPI() {
	L := e.L
	rx := L.NewTable()

	rectMod := L.NewTable()
	for _, b := range rectBindings {
		L.SetField(rectMod, b.luaName, L.NewFunction(e.dispatchFunc(b)))
	}
	L.SetField(rx, "rect", rectMod)

	calcMod := L.NewTable()
	for _, b := range calcBindings {
		L.SetField(calcMod, b.luaName, L.NewFunction(e.dispatchFunc(b)))
	}
	L.SetField(rx, "calc", calcMod)

	bufMod := L.NewTable()
	L.SetField(bufMod, "text", L.NewFunction(e.bufferText))
	L.SetField(bufMod, "line", L.NewFunction(e.bufferLine))
	L.SetField(bufMod, "line_count", L.NewFunction(e.bufferLineCount))
	L.SetField(rx, "buffer", bufMod)

	L.SetField(rx, "cursor", L.NewFunction(e.setCursor))

	L.SetGlobal("rx", rx)
}

// dispatchFunc builds a Lua function dispatching the bound action. The
// optional numeric argument is the count; text-taking operations consume
// their string first. Error results raise a Lua error; otherwise the
// result's message (possibly empty) is returned.
func (e *Engine) dispatchFunc(b actionBinding) lua.LGFunction {
	return func(L *lua.LState) int {
		action := input.Action{Name: b.action, Source: input.SourceScript}
		argIdx := 1
		if b.takesText {
			action.Text = L.CheckString(argIdx)
			argIdx++
		}
		if L.GetTop() >= argIdx {
			action.Count = L.CheckInt(argIdx)
		}

		result := e.host.Dispatch(action)
		if result.IsError() {
			L.RaiseError("%s: %v", b.action, result.Error)
			return 0
		}
		L.Push(lua.LString(result.Message))
		return 1
	}
}

// bufferText returns the full buffer content.
func (e *Engine) bufferText(L *lua.LState) int {
	L.Push(lua.LString(e.host.Buffer().Text()))
	return 1
}

// bufferLine returns the text of a 1-based line.
func (e *Engine) bufferLine(L *lua.LState) int {
	n := L.CheckInt(1)
	buf := e.host.Buffer()
	if n < 1 || n > buf.LineCount() {
		L.RaiseError("line %d out of range 1..%d", n, buf.LineCount())
		return 0
	}
	L.Push(lua.LString(buf.LineText(n - 1)))
	return 1
}

// bufferLineCount returns the number of lines.
func (e *Engine) bufferLineCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.host.Buffer().LineCount()))
	return 1
}

// setCursor moves the host cursor to a 1-based line and column.
func (e *Engine) setCursor(L *lua.LState) int {
	line := L.CheckInt(1)
	col := L.CheckInt(2)
	e.host.SetCursor(buffer.Point{Line: line - 1, Column: col - 1})
	return 0
}

// DoString executes a script.
func (e *Engine) DoString(src string) error {
	return e.L.DoString(src)
}

// DoFile executes a script file.
func (e *Engine) DoFile(path string) error {
	return e.L.DoFile(path)
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.L.Close()
}
