package app

import (
	"github.com/rectmode/rectmode/internal/calc"
	"github.com/rectmode/rectmode/internal/calc/stackmachine"
	"github.com/rectmode/rectmode/internal/config"
	"github.com/rectmode/rectmode/internal/dispatcher"
	"github.com/rectmode/rectmode/internal/dispatcher/execctx"
	"github.com/rectmode/rectmode/internal/dispatcher/handler"
	"github.com/rectmode/rectmode/internal/dispatcher/handlers/rectops"
	"github.com/rectmode/rectmode/internal/engine/buffer"
	"github.com/rectmode/rectmode/internal/event"
	"github.com/rectmode/rectmode/internal/input"
	"github.com/rectmode/rectmode/internal/input/mode"
	"github.com/rectmode/rectmode/internal/rect"
)

// App wires one editing session together: a buffer, its rectangle context,
// the dispatcher with every operation registered, the mode manager, and the
// event loop deferred work runs on.
type App struct {
	cfg    config.Config
	logger *Logger

	buf   *buffer.Buffer
	exec  *execctx.ExecutionContext
	disp  *dispatcher.Dispatcher
	modes *mode.Manager
	loop  *event.Loop
}

// blockRegister is the in-process block clipboard.
type blockRegister struct {
	block rect.LineBlock
	set   bool
}

func (r *blockRegister) SetBlock(block rect.LineBlock) {
	r.block = block
	r.set = true
}

func (r *blockRegister) Block() (rect.LineBlock, bool) {
	return r.block, r.set
}

// calcFormat builds the machine display format from the calc configuration.
func calcFormat(cfg config.Config) calc.Format {
	return calc.Format{
		Precision:     cfg.Calc.Precision,
		NoBrackets:    cfg.Calc.NoBrackets,
		ExpandVectors: cfg.Calc.ExpandVectors,
	}
}

// New assembles a session over the given text.
func New(cfg config.Config, logger *Logger, text string) (*App, error) {
	if logger == nil {
		logger = NewLogger(DefaultLoggerConfig())
	}
	logger.SetLevel(ParseLogLevel(cfg.LogLevel))

	buf := buffer.NewBufferFromString(text)
	loop := event.NewLoop()

	exec := &execctx.ExecutionContext{
		Rect:       rect.NewContext(buf),
		Machine:    stackmachine.New(cfg.Calc.Precision),
		Loop:       loop,
		Registers:  &blockRegister{},
		FastStep:   cfg.FastStep,
		FillWidth:  cfg.FillWidth,
		CalcFormat: calcFormat(cfg),
	}

	registry := dispatcher.NewRegistry()
	rectops.Register(registry)
	disp := dispatcher.New(registry)

	dispatchLog := logger.WithComponent("dispatch")
	disp.AddPostHook(func(a *input.Action, ctx *execctx.ExecutionContext, r *handler.Result) {
		switch {
		case r.IsError():
			dispatchLog.Error("%s: %v", a.Name, r.Error)
		case r.Message != "":
			dispatchLog.Info("%s: %s", a.Name, r.Message)
		default:
			dispatchLog.Debug("%s ok", a.Name)
		}
	})

	modes := mode.NewManager(mode.NewContext(exec))
	modes.Register(mode.NewNormalMode())
	modes.Register(mode.NewRectangleMode())
	if err := modes.SetInitialMode(mode.ModeNormal); err != nil {
		loop.Close()
		return nil, err
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		buf:    buf,
		exec:   exec,
		disp:   disp,
		modes:  modes,
		loop:   loop,
	}, nil
}

// Buffer returns the session's buffer.
func (a *App) Buffer() *buffer.Buffer { return a.buf }

// Exec returns the session's execution context.
func (a *App) Exec() *execctx.ExecutionContext { return a.exec }

// Modes returns the session's mode manager.
func (a *App) Modes() *mode.Manager { return a.modes }

// Logger returns the session's logger.
func (a *App) Logger() *Logger { return a.logger }

// Config returns the session's configuration.
func (a *App) Config() config.Config { return a.cfg }

// SetCursor moves the host cursor, clamped to the buffer.
func (a *App) SetCursor(p buffer.Point) {
	a.exec.Cursor = a.buf.ClampPoint(p)
}

// Cursor returns the host cursor.
func (a *App) Cursor() buffer.Point { return a.exec.Cursor }

// Dispatch routes an action through the dispatcher.
func (a *App) Dispatch(action input.Action) handler.Result {
	result := a.disp.Dispatch(action, a.exec)
	if result.ModeChange != "" {
		if err := a.modes.Switch(result.ModeChange); err != nil {
			a.logger.Error("mode change to %q: %v", result.ModeChange, err)
		}
	}
	return result
}

// Do dispatches an action by name with a count.
func (a *App) Do(name string, count int) handler.Result {
	return a.Dispatch(input.Action{Name: name, Count: count, Source: input.SourceInternal})
}

// Reconfigure applies a freshly loaded configuration to the running
// session.
func (a *App) Reconfigure(cfg config.Config) {
	a.cfg = cfg
	a.exec.FastStep = cfg.FastStep
	a.exec.FillWidth = cfg.FillWidth
	a.exec.CalcFormat = calcFormat(cfg)
	a.logger.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.logger.Info("configuration reloaded")
}

// Drain waits for posted deferred work to finish.
func (a *App) Drain() { a.loop.Drain() }

// Close shuts the session down.
func (a *App) Close() {
	a.loop.Close()
}
