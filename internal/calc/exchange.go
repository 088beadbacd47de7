package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rectmode/rectmode/internal/rect"
)

// Errors returned by exchange operations.
var (
	ErrNoMachine  = errors.New("no matrix machine available")
	ErrNoReduce   = errors.New("machine does not support the reduction")
	ErrEmptyBlock = errors.New("rectangle contains no numeric rows")
)

// Diagnostic reports a reconcilable row-count mismatch between the
// machine's printed matrix and the rectangle it is spliced into. It is a
// warning, never an error: the yank completes with the stated recovery.
type Diagnostic struct {
	Rows      int
	Height    int
	Truncated bool
	Padded    bool
}

// Message returns the user-visible description of the mismatch, or "" when
// the row counts agreed.
func (d Diagnostic) Message() string {
	switch {
	case d.Truncated:
		return fmt.Sprintf("matrix has %d rows but rectangle spans %d; extra rows dropped", d.Rows, d.Height)
	case d.Padded:
		return fmt.Sprintf("matrix has %d rows but rectangle spans %d; remaining rows blank-padded", d.Rows, d.Height)
	default:
		return ""
	}
}

// Grab hands the active rectangle's content to the machine as a well-formed
// 2-D block of numeric tokens.
func Grab(ctx *rect.Context, m Machine) error {
	block, err := grabBlock(ctx, m)
	if err != nil {
		return err
	}
	return m.PushMatrix(block.Tokenize())
}

// GrabSumRows pushes the rectangle and asks the machine to reduce it to
// per-row sums. The reduction itself is the machine's.
func GrabSumRows(ctx *rect.Context, m Machine) error {
	if err := Grab(ctx, m); err != nil {
		return err
	}
	r, ok := m.(RowReducer)
	if !ok {
		return ErrNoReduce
	}
	return r.SumRows()
}

// GrabSumColumns pushes the rectangle and asks the machine to reduce it to
// per-column sums.
func GrabSumColumns(ctx *rect.Context, m Machine) error {
	if err := Grab(ctx, m); err != nil {
		return err
	}
	r, ok := m.(ColumnReducer)
	if !ok {
		return ErrNoReduce
	}
	return r.SumColumns()
}

func grabBlock(ctx *rect.Context, m Machine) (rect.LineBlock, error) {
	if m == nil {
		return nil, ErrNoMachine
	}
	r, ok := ctx.Active()
	if !ok {
		return nil, rect.ErrNoRectangle
	}
	block := rect.ReadBlock(ctx.Buffer(), r)
	for _, row := range block.Tokenize() {
		if len(row) > 0 {
			return block, nil
		}
	}
	return nil, ErrEmptyBlock
}

// Yank splices the machine's top-of-stack value into the active rectangle.
// The machine is directed to print without brackets and with ellipsis
// expansion disabled, so every row parses as a plain token line. Row count
// is reconciled against the rectangle height (extra rows are dropped,
// missing rows blank-padded, both with a diagnostic) and the content is
// realigned through the guard-space window before reconstruction.
func Yank(ctx *rect.Context, m Machine, precision int) (Diagnostic, error) {
	if m == nil {
		return Diagnostic{}, ErrNoMachine
	}
	r, ok := ctx.Active()
	if !ok {
		return Diagnostic{}, rect.ErrNoRectangle
	}

	text, err := m.TopAsText(Format{NoBrackets: true, ExpandVectors: true, Precision: precision})
	if err != nil {
		return Diagnostic{}, err
	}
	block := parseMatrixText(text)

	top, left, bottom, right := r.Bounds()
	height := bottom - top + 1

	diag := Diagnostic{Rows: len(block), Height: height}
	switch {
	case len(block) > height:
		block = block[:height]
		diag.Truncated = true
	case len(block) < height:
		// Left short: the rebuild pad fallback fills the surplus rows.
		diag.Padded = true
	}

	low, high := rect.AnalyzePadding(block).GuardWindow()

	// Rows print near-uniform from the machine's fixed-format output; a
	// later row of a different length is tolerated by the per-row window.
	targetWidth := 0
	if len(block) > 0 {
		targetWidth = len(block[0])
	}

	if err := rect.Rebuild(ctx.Buffer(), top, bottom, left, right, &block, targetWidth, low, high); err != nil {
		return diag, err
	}
	return diag, nil
}

// parseMatrixText splits the machine's printed value into rows. A final
// unterminated line counts as a full row.
func parseMatrixText(text string) rect.LineBlock {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return rect.LineBlock{}
	}
	return rect.LineBlock(strings.Split(text, "\n"))
}
