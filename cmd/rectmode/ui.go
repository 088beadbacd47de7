package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/rectmode/rectmode/internal/app"
	"github.com/rectmode/rectmode/internal/config"
	"github.com/rectmode/rectmode/internal/dispatcher/handler"
	"github.com/rectmode/rectmode/internal/engine/buffer"
	"github.com/rectmode/rectmode/internal/input"
	"github.com/rectmode/rectmode/internal/input/mode"
)

// UI is the tcell front end: a buffer view, a rectangle highlight, and a
// status line.
type UI struct {
	screen  tcell.Screen
	session *app.App
	rectKey *mode.RectangleMode

	status string
	// prompt collects the argument of the string-rectangle command while
	// it is being typed.
	prompt    []rune
	prompting bool

	// multi-cursor demo collaborator: placed cursors are rendered until
	// the next keystroke.
	placed []buffer.Point
}

func newUI(session *app.App) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	ui := &UI{screen: screen, session: session}
	rk, _ := session.Modes().Get(mode.ModeRectangle).(*mode.RectangleMode)
	ui.rectKey = rk
	session.Exec().Placer = ui
	return ui, nil
}

// Place implements the multi-cursor collaborator for the demo: one cursor
// per line at the column.
func (u *UI) Place(column, startLine, endLine int) {
	u.placed = u.placed[:0]
	for line := startLine; line <= endLine; line++ {
		u.placed = append(u.placed, buffer.Point{Line: line, Column: column})
	}
	u.status = fmt.Sprintf("%d cursors placed at column %d", len(u.placed), column)
}

// postReload hands a freshly loaded config to the UI goroutine.
func (u *UI) postReload(cfg config.Config) {
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(cfg))
}

// Run drives the event loop until quit.
func (u *UI) Run() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	defer u.screen.Fini()

	for {
		u.render()
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			if cfg, ok := ev.Data().(config.Config); ok {
				u.session.Reconfigure(cfg)
				u.status = "configuration reloaded"
			}
		case *tcell.EventKey:
			if quit := u.handleKey(ev); quit {
				return nil
			}
		}
	}
}

func (u *UI) handleKey(ev *tcell.EventKey) (quit bool) {
	if u.prompting {
		u.handlePromptKey(ev)
		return false
	}

	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	if u.session.Modes().IsMode(mode.ModeRectangle) {
		u.handleRectangleKey(ev)
		return false
	}
	return u.handleNormalKey(ev)
}

func (u *UI) handleNormalKey(ev *tcell.EventKey) (quit bool) {
	cur := u.session.Cursor()
	switch {
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		u.session.SetCursor(buffer.Point{Line: cur.Line - 1, Column: cur.Column})
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		u.session.SetCursor(buffer.Point{Line: cur.Line + 1, Column: cur.Column})
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		u.session.SetCursor(buffer.Point{Line: cur.Line, Column: cur.Column - 1})
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		u.session.SetCursor(buffer.Point{Line: cur.Line, Column: cur.Column + 1})
	case ev.Rune() == 'r' || ev.Rune() == ' ':
		u.switchMode(mode.ModeRectangle)
	case ev.Rune() == 'R':
		u.switchMode(mode.ModeRectangle)
		u.report(u.session.Do("rect.restoreLast", 0))
	case ev.Rune() == 'p':
		u.report(u.session.Do("rect.paste", 0))
	case ev.Rune() == 'q':
		return true
	}
	return false
}

func (u *UI) handleRectangleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		u.switchMode(mode.ModeNormal)
		return
	}
	if ev.Key() == tcell.KeyRune && u.rectKey != nil && u.rectKey.HandleRune(ev.Rune()) {
		return
	}

	count := 0
	if u.rectKey != nil {
		count = u.rectKey.TakeCount()
	}

	switch {
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		u.report(u.session.Do("rect.shiftUp", count))
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		u.report(u.session.Do("rect.shiftDown", count))
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		u.report(u.session.Do("rect.shiftLeft", count))
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		u.report(u.session.Do("rect.shiftRight", count))
	case ev.Rune() == 'K':
		u.report(u.session.Do("rect.shiftUpFast", count))
	case ev.Rune() == 'J':
		u.report(u.session.Do("rect.shiftDownFast", count))
	case ev.Rune() == 'H':
		u.report(u.session.Do("rect.shiftLeftFast", count))
	case ev.Rune() == 'L':
		u.report(u.session.Do("rect.shiftRightFast", count))
	case ev.Rune() == 'x':
		u.report(u.session.Do("rect.cycleCorner", 0))
	case ev.Rune() == 't':
		u.report(u.session.Do("rect.trimWhitespace", 0))
	case ev.Rune() == 's':
		u.prompting = true
		u.prompt = u.prompt[:0]
	case ev.Rune() == 'o':
		u.report(u.session.Do("rect.open", 0))
	case ev.Rune() == 'c':
		u.report(u.session.Do("rect.clear", 0))
	case ev.Rune() == 'f':
		u.report(u.session.Do("rect.fill", count))
	case ev.Rune() == 'd':
		u.report(u.session.Do("rect.cut", 0))
	case ev.Rune() == 'y':
		u.report(u.session.Do("rect.copy", 0))
	case ev.Rune() == 'm':
		u.report(u.session.Do("rect.multiCursor", 0))
		u.switchMode(mode.ModeNormal)
	case ev.Rune() == 'g':
		u.report(u.session.Do("calc.grab", 0))
	case ev.Rune() == '+':
		u.report(u.session.Do("calc.grabSumRows", 0))
	case ev.Rune() == '=':
		u.report(u.session.Do("calc.grabSumColumns", 0))
	case ev.Rune() == 'v':
		u.report(u.session.Do("calc.yank", 0))
	case ev.Rune() == '?':
		u.report(u.session.Do("calc.show", 0))
	}
}

func (u *UI) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		u.prompting = false
	case tcell.KeyEnter:
		u.prompting = false
		u.report(u.session.Dispatch(input.Action{
			Name: "rect.string",
			Text: string(u.prompt),
		}))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.prompt) > 0 {
			u.prompt = u.prompt[:len(u.prompt)-1]
		}
	case tcell.KeyRune:
		u.prompt = append(u.prompt, ev.Rune())
	}
}

func (u *UI) switchMode(name string) {
	if err := u.session.Modes().Switch(name); err != nil {
		u.status = err.Error()
		return
	}
	u.placed = u.placed[:0]
	u.status = ""
}

func (u *UI) report(result handler.Result) {
	switch {
	case result.IsError():
		u.status = "error: " + result.Error.Error()
	case result.Message != "":
		u.status = result.Message
	default:
		u.status = ""
	}
	u.session.Drain()
}

func (u *UI) render() {
	u.screen.Clear()
	width, height := u.screen.Size()
	if height < 2 {
		u.screen.Show()
		return
	}

	buf := u.session.Buffer()
	highlight := tcell.StyleDefault.Reverse(true)
	top, left, bottom, right := -1, 0, -1, 0
	if r, ok := u.session.Exec().Rect.Active(); ok {
		top, left, bottom, right = r.Bounds()
	}

	for line := 0; line < buf.LineCount() && line < height-1; line++ {
		x := 0
		col := 0
		for _, r := range buf.LineText(line) {
			style := tcell.StyleDefault
			if line >= top && line <= bottom && col >= left && col < max(right, left+1) {
				style = highlight
			}
			u.screen.SetContent(x, line, r, nil, style)
			x += runewidth.RuneWidth(r)
			col++
		}
		// Virtual cells inside the rectangle past the end of line.
		if line >= top && line <= bottom && right > col {
			start := max(col, left)
			for c := start; c < right && x+(c-col) < width; c++ {
				u.screen.SetContent(x+(c-col), line, ' ', nil, highlight)
			}
		}
	}

	for _, p := range u.placed {
		if p.Line < height-1 {
			u.screen.SetContent(p.Column, p.Line, '|', nil, highlight)
		}
	}

	u.renderStatus(width, height)

	cur := u.session.Cursor()
	u.screen.ShowCursor(cur.Column, cur.Line)
	u.screen.Show()
}

func (u *UI) renderStatus(width, height int) {
	var line string
	if u.prompting {
		line = "string rectangle: " + string(u.prompt)
	} else {
		name := u.session.Modes().CurrentName()
		if m := u.session.Modes().Current(); m != nil {
			name = m.DisplayName()
		}
		cur := u.session.Cursor()
		line = fmt.Sprintf(" %s  %d:%d  %s", name, cur.Line+1, cur.Column+1, u.status)
	}

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range line {
		if x >= width {
			break
		}
		u.screen.SetContent(x, height-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, height-1, ' ', nil, style)
	}
}
