package rect

import (
	"strings"

	"github.com/rectmode/rectmode/internal/engine/buffer"
)

// LineBlock is an ordered sequence of row strings: a rectangle's content
// independent of the buffer. Rows carry no uniform-width invariant; Rebuild
// is the component that reconciles ragged rows against a fixed width.
type LineBlock []string

// ReadBlock extracts the rectangle's content, one string per row. Rows
// shorter than the right edge read as space-padded.
func ReadBlock(buf *buffer.Buffer, r Rectangle) LineBlock {
	top, left, bottom, right := r.Bounds()
	block := make(LineBlock, 0, bottom-top+1)
	for line := top; line <= bottom; line++ {
		block = append(block, buf.SliceLine(line, left, right))
	}
	return block
}

// CutBlock extracts the rectangle's content and deletes the slice from
// every row, closing the gap.
func CutBlock(buf *buffer.Buffer, r Rectangle) (LineBlock, error) {
	block := ReadBlock(buf, r)
	top, left, bottom, right := r.Bounds()
	for line := top; line <= bottom; line++ {
		if err := buf.ReplaceSlice(line, left, right, ""); err != nil {
			return nil, err
		}
	}
	return block, nil
}

// PasteBlock inserts a block at a position, one row per buffer line
// starting at at.Line. Rows below the end of the buffer are appended as new
// lines.
func PasteBlock(buf *buffer.Buffer, at buffer.Point, block LineBlock) error {
	for i, row := range block {
		line := at.Line + i
		if line >= buf.LineCount() {
			if err := buf.InsertLines(buf.LineCount(), []string{""}); err != nil {
				return err
			}
		}
		if err := buf.ReplaceSlice(line, at.Column, at.Column, row); err != nil {
			return err
		}
	}
	return nil
}

// Width returns the length of the longest row.
func (b LineBlock) Width() int {
	w := 0
	for _, row := range b {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Tokenize splits every row into whitespace-and-comma separated tokens,
// the 2-D token form handed to the matrix machine.
func (b LineBlock) Tokenize() [][]string {
	rows := make([][]string, len(b))
	for i, row := range b {
		rows[i] = strings.FieldsFunc(row, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
	}
	return rows
}
