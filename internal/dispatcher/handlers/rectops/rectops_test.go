package rectops

import (
	"strings"
	"testing"

	"github.com/rectmode/rectmode/internal/calc"
	"github.com/rectmode/rectmode/internal/calc/stackmachine"
	"github.com/rectmode/rectmode/internal/dispatcher"
	"github.com/rectmode/rectmode/internal/dispatcher/execctx"
	"github.com/rectmode/rectmode/internal/dispatcher/handler"
	"github.com/rectmode/rectmode/internal/engine/buffer"
	"github.com/rectmode/rectmode/internal/event"
	"github.com/rectmode/rectmode/internal/input"
	"github.com/rectmode/rectmode/internal/rect"
)

type fakeRegister struct {
	block rect.LineBlock
	set   bool
}

func (r *fakeRegister) SetBlock(block rect.LineBlock) {
	r.block = block
	r.set = true
}

func (r *fakeRegister) Block() (rect.LineBlock, bool) {
	return r.block, r.set
}

type fakePlacer struct {
	column, startLine, endLine int
	called                     bool
}

func (p *fakePlacer) Place(column, startLine, endLine int) {
	p.column = column
	p.startLine = startLine
	p.endLine = endLine
	p.called = true
}

func newHarness(t *testing.T, text string) (*dispatcher.Dispatcher, *execctx.ExecutionContext) {
	t.Helper()
	buf := buffer.NewBufferFromString(text)
	reg := dispatcher.NewRegistry()
	Register(reg)
	return dispatcher.New(reg), &execctx.ExecutionContext{Rect: rect.NewContext(buf)}
}

func activate(ctx *execctx.ExecutionContext, markLine, markCol, pointLine, pointCol int) {
	ctx.Rect.SetActive(rect.Rectangle{
		Mark:  rect.Endpoint{Pos: buffer.Point{Line: markLine, Column: markCol}},
		Point: rect.Endpoint{Pos: buffer.Point{Line: pointLine, Column: pointCol}},
	})
}

func dispatch(t *testing.T, d *dispatcher.Dispatcher, ctx *execctx.ExecutionContext, name string, count int) handler.Result {
	t.Helper()
	return d.Dispatch(input.Action{Name: name, Count: count}, ctx)
}

func TestRegisterInstallsAllActions(t *testing.T) {
	reg := dispatcher.NewRegistry()
	Register(reg)
	for _, name := range []string{
		"rect.shiftLeft", "rect.shiftRight", "rect.shiftUp", "rect.shiftDown",
		"rect.shiftLeftFast", "rect.shiftRightFast", "rect.shiftUpFast", "rect.shiftDownFast",
		"rect.cycleCorner", "rect.restart", "rect.restoreLast",
		"rect.trimWhitespace", "rect.string", "rect.open", "rect.clear", "rect.fill",
		"rect.cut", "rect.copy", "rect.paste", "rect.multiCursor",
		"calc.grab", "calc.grabSumRows", "calc.grabSumColumns", "calc.yank", "calc.show",
	} {
		if !reg.Has(name) {
			t.Errorf("registry missing %q", name)
		}
	}
}

func TestShiftActions(t *testing.T) {
	d, ctx := newHarness(t, "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc\n")
	activate(ctx, 0, 1, 1, 3)

	if r := dispatch(t, d, ctx, "rect.shiftRight", 2); !r.IsOK() {
		t.Fatalf("shiftRight: %v", r.Error)
	}
	if r := dispatch(t, d, ctx, "rect.shiftDown", 1); !r.IsOK() {
		t.Fatalf("shiftDown: %v", r.Error)
	}

	active, ok := ctx.Rect.Active()
	if !ok {
		t.Fatal("no active rectangle after shifts")
	}
	top, left, bottom, right := active.Bounds()
	if top != 1 || left != 3 || bottom != 2 || right != 5 {
		t.Errorf("bounds = (%d,%d,%d,%d), want (1,3,2,5)", top, left, bottom, right)
	}
}

func TestFastShiftMultiplies(t *testing.T) {
	d, ctx := newHarness(t, strings.Repeat("x", 40)+"\n")
	activate(ctx, 0, 0, 0, 2)

	dispatch(t, d, ctx, "rect.shiftRightFast", 0)
	active, _ := ctx.Rect.Active()
	_, left, _, right := active.Bounds()
	if left != DefaultFastStep || right != DefaultFastStep+2 {
		t.Errorf("columns after fast shift = (%d,%d), want (%d,%d)",
			left, right, DefaultFastStep, DefaultFastStep+2)
	}

	ctx.FastStep = 3
	dispatch(t, d, ctx, "rect.shiftLeftFast", 1)
	active, _ = ctx.Rect.Active()
	_, left, _, _ = active.Bounds()
	if left != DefaultFastStep-3 {
		t.Errorf("left after configured fast shift = %d, want %d", left, DefaultFastStep-3)
	}
}

func TestShiftWithoutRectangle(t *testing.T) {
	d, ctx := newHarness(t, "abc\n")
	if r := dispatch(t, d, ctx, "rect.shiftDown", 1); !r.IsError() {
		t.Errorf("shiftDown without rectangle status = %v, want error", r.Status)
	}
}

func TestMissingRectContext(t *testing.T) {
	reg := dispatcher.NewRegistry()
	Register(reg)
	d := dispatcher.New(reg)
	r := d.Dispatch(input.Action{Name: "rect.restart"}, &execctx.ExecutionContext{})
	if !r.IsError() {
		t.Errorf("dispatch without rect context status = %v, want error", r.Status)
	}
}

func TestRestartAtCursor(t *testing.T) {
	d, ctx := newHarness(t, "hello\nworld\n")
	ctx.Cursor = buffer.Point{Line: 1, Column: 2}

	if r := dispatch(t, d, ctx, "rect.restart", 0); !r.IsOK() {
		t.Fatalf("restart: %v", r.Error)
	}
	active, ok := ctx.Rect.Active()
	if !ok {
		t.Fatal("no active rectangle after restart")
	}
	top, left, bottom, right := active.Bounds()
	if top != 1 || left != 2 || bottom != 1 || right != 2 {
		t.Errorf("bounds = (%d,%d,%d,%d), want zero-size at (1,2)", top, left, bottom, right)
	}
}

func TestRestoreLastEmptyIsNoOp(t *testing.T) {
	d, ctx := newHarness(t, "abc\n")
	r := dispatch(t, d, ctx, "rect.restoreLast", 0)
	if r.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", r.Status)
	}
	if r.Message == "" {
		t.Errorf("expected an informational message for empty restore")
	}
}

func TestCutStashesAndFillsRegister(t *testing.T) {
	d, ctx := newHarness(t, "abcdef\nghijkl\n")
	regs := &fakeRegister{}
	ctx.Registers = regs
	activate(ctx, 0, 1, 1, 4)

	if r := dispatch(t, d, ctx, "rect.cut", 0); !r.IsOK() {
		t.Fatalf("cut: %v", r.Error)
	}
	if got, want := strings.Join(regs.block, "|"), "bcd|hij"; got != want {
		t.Errorf("register block = %q, want %q", got, want)
	}
	if got, want := ctx.Buffer().Text(), "aef\ngkl\n"; got != want {
		t.Errorf("buffer after cut = %q, want %q", got, want)
	}
	if _, err := ctx.Rect.RestoreLast(); err != nil {
		t.Errorf("RestoreLast after cut: %v, want stored rectangle", err)
	}
}

func TestCopyLeavesBufferAlone(t *testing.T) {
	d, ctx := newHarness(t, "abcdef\nghijkl\n")
	regs := &fakeRegister{}
	ctx.Registers = regs
	activate(ctx, 0, 1, 1, 4)

	if r := dispatch(t, d, ctx, "rect.copy", 0); !r.IsOK() {
		t.Fatalf("copy: %v", r.Error)
	}
	if got, want := strings.Join(regs.block, "|"), "bcd|hij"; got != want {
		t.Errorf("register block = %q, want %q", got, want)
	}
	if got, want := ctx.Buffer().Text(), "abcdef\nghijkl\n"; got != want {
		t.Errorf("buffer after copy = %q, want %q", got, want)
	}
}

func TestPasteFromRegister(t *testing.T) {
	d, ctx := newHarness(t, "1234\n5678\n")
	ctx.Registers = &fakeRegister{block: rect.LineBlock{"XX", "YY"}, set: true}
	ctx.Cursor = buffer.Point{Line: 0, Column: 2}

	if r := dispatch(t, d, ctx, "rect.paste", 0); !r.IsOK() {
		t.Fatalf("paste: %v", r.Error)
	}
	if got, want := ctx.Buffer().Text(), "12XX34\n56YY78\n"; got != want {
		t.Errorf("buffer after paste = %q, want %q", got, want)
	}
}

func TestPasteEmptyRegisterIsNoOp(t *testing.T) {
	d, ctx := newHarness(t, "1234\n")
	ctx.Registers = &fakeRegister{}
	r := dispatch(t, d, ctx, "rect.paste", 0)
	if r.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", r.Status)
	}
}

func TestClearReactivatesThroughLoop(t *testing.T) {
	d, ctx := newHarness(t, "abcdef\nghijkl\n")
	ctx.Loop = event.NewLoop()
	defer ctx.Loop.Close()
	activate(ctx, 0, 1, 1, 4)

	if r := dispatch(t, d, ctx, "rect.clear", 0); !r.IsOK() {
		t.Fatalf("clear: %v", r.Error)
	}
	if got, want := ctx.Buffer().Text(), "a   ef\ng   kl\n"; got != want {
		t.Errorf("buffer after clear = %q, want %q", got, want)
	}

	ctx.Loop.Drain()
	active, ok := ctx.Rect.Active()
	if !ok {
		t.Fatal("rectangle not reactivated after loop drain")
	}
	top, left, bottom, right := active.Bounds()
	if top != 0 || left != 1 || bottom != 1 || right != 4 {
		t.Errorf("reactivated bounds = (%d,%d,%d,%d), want (0,1,1,4)", top, left, bottom, right)
	}
}

func TestDispatchOverlapsLoopReactivation(t *testing.T) {
	d, ctx := newHarness(t, "abcdef\nghijkl\n")
	ctx.Loop = event.NewLoop()
	defer ctx.Loop.Close()
	activate(ctx, 0, 1, 1, 4)

	// Dispatch a reactivating op and keep dispatching while the loop
	// goroutine replays the restore, without draining in between.
	if r := dispatch(t, d, ctx, "rect.clear", 0); !r.IsOK() {
		t.Fatalf("clear: %v", r.Error)
	}
	for i := 0; i < 50; i++ {
		dispatch(t, d, ctx, "rect.shiftRight", 0)
	}

	ctx.Loop.Drain()
	if _, ok := ctx.Rect.Active(); !ok {
		t.Fatal("rectangle not reactivated after loop drain")
	}
}

func TestStringRectangle(t *testing.T) {
	d, ctx := newHarness(t, "abcdef\nghijkl\n")
	activate(ctx, 0, 1, 1, 4)

	r := d.Dispatch(input.Action{Name: "rect.string", Text: "-"}, ctx)
	if !r.IsOK() {
		t.Fatalf("string: %v", r.Error)
	}
	if got, want := ctx.Buffer().Text(), "a-ef\ng-kl\n"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestOpenRectangle(t *testing.T) {
	d, ctx := newHarness(t, "abcd\nefgh\n")
	activate(ctx, 0, 1, 1, 3)

	if r := dispatch(t, d, ctx, "rect.open", 0); !r.IsOK() {
		t.Fatalf("open: %v", r.Error)
	}
	if got, want := ctx.Buffer().Text(), "a  bcd\ne  fgh\n"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestTrimWhitespaceMessages(t *testing.T) {
	d, ctx := newHarness(t, "x  ab\nx   cd\n")
	activate(ctx, 0, 1, 1, 6)

	r := dispatch(t, d, ctx, "rect.trimWhitespace", 0)
	if !r.IsOK() {
		t.Fatalf("trim: %v", r.Error)
	}
	if r.Message == "" {
		t.Errorf("expected a message naming the trimmed margin")
	}

	activate(ctx, 0, 0, 1, 1)
	r = dispatch(t, d, ctx, "rect.trimWhitespace", 0)
	if r.Status != handler.StatusNoOp {
		t.Errorf("trim with no margin status = %v, want no-op", r.Status)
	}
}

func TestFillUsesCountAsWidth(t *testing.T) {
	d, ctx := newHarness(t, "alpha beta gamma\n")
	activate(ctx, 0, 0, 0, 16)

	if r := dispatch(t, d, ctx, "rect.fill", 5); !r.IsOK() {
		t.Fatalf("fill: %v", r.Error)
	}
	if got, want := ctx.Buffer().Text(), "alpha\nbeta\ngamma\n"; got != want {
		t.Errorf("buffer after fill = %q, want %q", got, want)
	}
	active, ok := ctx.Rect.Active()
	if !ok {
		t.Fatal("no active rectangle after fill")
	}
	if _, h := active.Dimensions(); h != 3 {
		t.Errorf("filled height = %d, want 3", h)
	}
}

func TestFillRejectsBadWidth(t *testing.T) {
	d, ctx := newHarness(t, "alpha beta\n")
	ctx.FillWidth = -1
	activate(ctx, 0, 0, 0, 10)

	// Count absent and configured width invalid falls back to the default.
	if r := dispatch(t, d, ctx, "rect.fill", 0); !r.IsOK() {
		t.Fatalf("fill with default width: %v", r.Error)
	}
	if got, want := ctx.Buffer().Text(), "alpha beta\n"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestMultiCursorStashesThenPlaces(t *testing.T) {
	d, ctx := newHarness(t, "aaaa\nbbbb\ncccc\n")
	placer := &fakePlacer{}
	ctx.Placer = placer
	activate(ctx, 0, 2, 2, 2)

	if r := dispatch(t, d, ctx, "rect.multiCursor", 0); !r.IsOK() {
		t.Fatalf("multiCursor: %v", r.Error)
	}
	if !placer.called {
		t.Fatal("placer was not invoked")
	}
	if placer.column != 2 || placer.startLine != 0 || placer.endLine != 2 {
		t.Errorf("Place(%d,%d,%d), want Place(2,0,2)",
			placer.column, placer.startLine, placer.endLine)
	}
	if _, ok := ctx.Rect.Active(); ok {
		t.Errorf("rectangle still active after multiCursor")
	}
	if _, err := ctx.Rect.RestoreLast(); err != nil {
		t.Errorf("RestoreLast after multiCursor: %v, want stored rectangle", err)
	}
}

func TestMultiCursorWithoutPlacer(t *testing.T) {
	d, ctx := newHarness(t, "aaaa\n")
	activate(ctx, 0, 0, 0, 2)
	if r := dispatch(t, d, ctx, "rect.multiCursor", 0); !r.IsError() {
		t.Errorf("status = %v, want error", r.Status)
	}
}

func TestCalcGrabAndYank(t *testing.T) {
	d, ctx := newHarness(t, "v 1 2 w\nv 3 4 w\n")
	machine := stackmachine.New(12)
	ctx.Machine = machine
	activate(ctx, 0, 2, 1, 5)

	if r := dispatch(t, d, ctx, "calc.grab", 0); !r.IsOK() {
		t.Fatalf("grab: %v", r.Error)
	}
	if machine.Depth() != 1 {
		t.Fatalf("machine depth = %d, want 1", machine.Depth())
	}

	if r := dispatch(t, d, ctx, "calc.grabSumColumns", 0); !r.IsOK() {
		t.Fatalf("grabSumColumns: %v", r.Error)
	}
	// Top of stack is now the row vector [4 6].
	if r := dispatch(t, d, ctx, "calc.yank", 0); !r.IsOK() {
		t.Fatalf("yank: %v", r.Error)
	}
	if got := ctx.Buffer().LineText(0); !strings.Contains(got, "4") || !strings.Contains(got, "6") {
		t.Errorf("line 0 after yank = %q, want the column sums spliced in", got)
	}
}

func TestCalcYankWithoutMachine(t *testing.T) {
	d, ctx := newHarness(t, "1 2\n")
	activate(ctx, 0, 0, 0, 3)
	if r := dispatch(t, d, ctx, "calc.yank", 0); !r.IsError() {
		t.Errorf("status = %v, want error", r.Status)
	}
	if got, want := ctx.Buffer().Text(), "1 2\n"; got != want {
		t.Errorf("buffer mutated on failed yank: %q, want %q", got, want)
	}
}

func TestCalcYankRowMismatchMessage(t *testing.T) {
	d, ctx := newHarness(t, "1 2\n3 4\n5 6\n")
	machine := stackmachine.New(12)
	ctx.Machine = machine
	activate(ctx, 0, 0, 0, 3)

	if r := dispatch(t, d, ctx, "calc.grab", 0); !r.IsOK() {
		t.Fatalf("grab: %v", r.Error)
	}

	// Yank a 1-row matrix into a 3-row rectangle: pad with a warning.
	activate(ctx, 0, 0, 2, 3)
	r := dispatch(t, d, ctx, "calc.yank", 0)
	if !r.IsOK() {
		t.Fatalf("yank: %v", r.Error)
	}
	if r.Message == "" {
		t.Errorf("expected a row-mismatch diagnostic message")
	}
}

func TestCalcShowUsesConfiguredFormat(t *testing.T) {
	d, ctx := newHarness(t, "1 2\n")
	machine := stackmachine.New(12)
	ctx.Machine = machine
	activate(ctx, 0, 0, 0, 3)

	if r := dispatch(t, d, ctx, "calc.grab", 0); !r.IsOK() {
		t.Fatalf("grab: %v", r.Error)
	}

	ctx.CalcFormat = calc.Format{Precision: 12, ExpandVectors: true}
	r := dispatch(t, d, ctx, "calc.show", 0)
	if !r.IsOK() {
		t.Fatalf("show: %v", r.Error)
	}
	if got, want := r.Message, "[ 1  2 ]"; got != want {
		t.Errorf("show message = %q, want %q", got, want)
	}

	ctx.CalcFormat.NoBrackets = true
	if got, want := dispatch(t, d, ctx, "calc.show", 0).Message, "1  2"; got != want {
		t.Errorf("bracket-free show message = %q, want %q", got, want)
	}
}

func TestCalcShowWithEmptyMachine(t *testing.T) {
	d, ctx := newHarness(t, "1 2\n")
	if r := dispatch(t, d, ctx, "calc.show", 0); !r.IsError() {
		t.Errorf("show without machine status = %v, want error", r.Status)
	}

	ctx.Machine = stackmachine.New(12)
	if r := dispatch(t, d, ctx, "calc.show", 0); !r.IsError() {
		t.Errorf("show on empty stack status = %v, want error", r.Status)
	}
}
