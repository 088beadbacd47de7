package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rectmode/rectmode/internal/config"
	"github.com/rectmode/rectmode/internal/engine/buffer"
	"github.com/rectmode/rectmode/internal/input/mode"
	"github.com/rectmode/rectmode/internal/rect"
)

func newTestApp(t *testing.T, text string) *App {
	t.Helper()
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &bytes.Buffer{}})
	a, err := New(config.Default(), logger, text)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestRectangleModeRoundTrip(t *testing.T) {
	a := newTestApp(t, "alpha\nbravo\ncharlie\n")
	a.SetCursor(buffer.Point{Line: 0, Column: 1})

	if err := a.Modes().Switch(mode.ModeRectangle); err != nil {
		t.Fatalf("Switch(rectangle): %v", err)
	}
	if r := a.Do("rect.shiftRight", 2); !r.IsOK() {
		t.Fatalf("shiftRight: %v", r.Error)
	}
	if r := a.Do("rect.shiftDown", 1); !r.IsOK() {
		t.Fatalf("shiftDown: %v", r.Error)
	}

	active, ok := a.Exec().Rect.Active()
	if !ok {
		t.Fatal("no active rectangle")
	}
	top, left, bottom, right := active.Bounds()
	if top != 1 || left != 3 || bottom != 1 || right != 3 {
		t.Errorf("bounds = (%d,%d,%d,%d), want (1,3,1,3)", top, left, bottom, right)
	}

	if err := a.Modes().Switch(mode.ModeNormal); err != nil {
		t.Fatalf("Switch(normal): %v", err)
	}
	if _, ok := a.Exec().Rect.Active(); ok {
		t.Error("rectangle still active in normal mode")
	}
	if r := a.Do("rect.restoreLast", 0); !r.IsOK() {
		t.Errorf("restoreLast after mode exit: status %v, %v", r.Status, r.Error)
	}
}

func TestClearThenDrainReactivates(t *testing.T) {
	a := newTestApp(t, "abcdef\nghijkl\n")
	a.Exec().Rect.SetActive(rect.Rectangle{
		Mark:  rect.Endpoint{Pos: buffer.Point{Line: 0, Column: 1}},
		Point: rect.Endpoint{Pos: buffer.Point{Line: 1, Column: 4}},
	})

	if r := a.Do("rect.clear", 0); !r.IsOK() {
		t.Fatalf("clear: %v", r.Error)
	}
	a.Drain()

	if _, ok := a.Exec().Rect.Active(); !ok {
		t.Error("rectangle not reactivated after drain")
	}
	if got, want := a.Buffer().Text(), "a   ef\ng   kl\n"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestCalcRoundTripThroughApp(t *testing.T) {
	a := newTestApp(t, "10 20\n30 40\n")
	a.Exec().Rect.SetActive(rect.Rectangle{
		Mark:  rect.Endpoint{Pos: buffer.Point{Line: 0, Column: 0}},
		Point: rect.Endpoint{Pos: buffer.Point{Line: 1, Column: 5}},
	})

	if r := a.Do("calc.grabSumRows", 0); !r.IsOK() {
		t.Fatalf("grabSumRows: %v", r.Error)
	}
	if r := a.Do("calc.yank", 0); !r.IsOK() {
		t.Fatalf("yank: %v", r.Error)
	}
	text := a.Buffer().Text()
	if !strings.Contains(text, "30") || !strings.Contains(text, "70") {
		t.Errorf("buffer after yank = %q, want row sums 30 and 70", text)
	}
}

func TestReconfigure(t *testing.T) {
	a := newTestApp(t, "0123456789\n")
	cfg := a.Config()
	cfg.FastStep = 2
	a.Reconfigure(cfg)

	a.Exec().Rect.SetActive(rect.Rectangle{
		Mark:  rect.Endpoint{Pos: buffer.Point{Line: 0, Column: 0}},
		Point: rect.Endpoint{Pos: buffer.Point{Line: 0, Column: 1}},
	})
	if r := a.Do("rect.shiftRightFast", 0); !r.IsOK() {
		t.Fatalf("shiftRightFast: %v", r.Error)
	}
	active, _ := a.Exec().Rect.Active()
	_, left, _, _ := active.Bounds()
	if left != 2 {
		t.Errorf("left after reconfigured fast shift = %d, want 2", left)
	}
}

func TestLoggerLevelsAndFields(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &out, Prefix: "rectmode"})

	logger.Info("hidden")
	logger.Warn("shown %d", 1)
	logger.WithComponent("dispatch").Error("failed")

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("info message emitted below level: %q", got)
	}
	if !strings.Contains(got, "[WARN] rectmode: shown 1") {
		t.Errorf("warn line missing, got %q", got)
	}
	if !strings.Contains(got, "component=dispatch") {
		t.Errorf("field missing, got %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"nonsense", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
