// Package stackmachine provides a minimal reference matrix machine for the
// exchange protocol: a stack of matrices with row/column sum reductions and
// fixed-precision printing. It evaluates no expressions.
package stackmachine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rectmode/rectmode/internal/calc"
)

// Errors returned by stack operations.
var (
	ErrEmptyStack = errors.New("matrix stack is empty")
	ErrBadToken   = errors.New("token is not a number")
	ErrNoRows     = errors.New("matrix has no rows")
)

// Stack is a stack-based matrix store.
type Stack struct {
	precision int
	stack     [][][]float64
}

// New creates a stack printing values at the given significant-digit
// precision (12 when non-positive).
func New(precision int) *Stack {
	if precision <= 0 {
		precision = 12
	}
	return &Stack{precision: precision}
}

// Depth returns the number of stacked matrices.
func (s *Stack) Depth() int { return len(s.stack) }

// PushMatrix parses a block of numeric token rows and pushes the matrix.
// Blank rows are skipped; a non-numeric token is an error and nothing is
// pushed.
func (s *Stack) PushMatrix(rows [][]string) error {
	matrix := make([][]float64, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		vals := make([]float64, len(row))
		for i, tok := range row {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrBadToken, tok)
			}
			vals[i] = v
		}
		matrix = append(matrix, vals)
	}
	if len(matrix) == 0 {
		return ErrNoRows
	}
	s.stack = append(s.stack, matrix)
	return nil
}

// Pop removes and returns the top matrix.
func (s *Stack) Pop() ([][]float64, error) {
	if len(s.stack) == 0 {
		return nil, ErrEmptyStack
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, nil
}

// SumRows replaces the top matrix with the column vector of its row sums.
func (s *Stack) SumRows() error {
	top, err := s.Pop()
	if err != nil {
		return err
	}
	sums := make([][]float64, len(top))
	for i, row := range top {
		total := 0.0
		for _, v := range row {
			total += v
		}
		sums[i] = []float64{total}
	}
	s.stack = append(s.stack, sums)
	return nil
}

// SumColumns replaces the top matrix with the row vector of its column sums.
func (s *Stack) SumColumns() error {
	top, err := s.Pop()
	if err != nil {
		return err
	}
	width := 0
	for _, row := range top {
		if len(row) > width {
			width = len(row)
		}
	}
	sums := make([]float64, width)
	for _, row := range top {
		for i, v := range row {
			sums[i] += v
		}
	}
	s.stack = append(s.stack, [][]float64{sums})
	return nil
}

// TopAsText prints the top matrix. Cells are right-aligned into uniform
// columns so every printed row has the same length; bracket syntax is added
// unless the format suppresses it.
func (s *Stack) TopAsText(f calc.Format) (string, error) {
	if len(s.stack) == 0 {
		return "", ErrEmptyStack
	}
	precision := f.Precision
	if precision <= 0 {
		precision = s.precision
	}
	top := s.stack[len(s.stack)-1]

	cells := make([][]string, len(top))
	width := 0
	for i, row := range top {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cell := strconv.FormatFloat(v, 'g', precision, 64)
			cells[i][j] = cell
			if len(cell) > width {
				width = len(cell)
			}
		}
	}

	var sb strings.Builder
	for i, row := range cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if !f.NoBrackets {
			sb.WriteString("[ ")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
		if !f.NoBrackets {
			sb.WriteString(" ]")
		}
	}
	return sb.String(), nil
}
