package rect

import (
	"strings"

	"github.com/rectmode/rectmode/internal/engine/buffer"
)

// Rebuild splices replacement content into a rectangle whose source rows
// have a different per-row shape than the destination. For each buffer row
// from startLine through endLine, top to bottom: the existing slice between
// startCol and endCol is deleted; while lines remain, its first row is
// popped, windowed to [low, len+high], and inserted; once lines is
// exhausted, targetWidth spaces are inserted instead, so the rectangle's
// height never shrinks. Content longer than the window is truncated without
// error.
func Rebuild(buf *buffer.Buffer, startLine, endLine, startCol, endCol int, lines *LineBlock, targetWidth, low, high int) error {
	for line := startLine; line <= endLine; line++ {
		var content string
		if len(*lines) > 0 {
			row := (*lines)[0]
			*lines = (*lines)[1:]
			content = window(row, low, high)
		} else {
			content = strings.Repeat(" ", targetWidth)
		}
		if err := buf.ReplaceSlice(line, startCol, endCol, content); err != nil {
			return err
		}
	}
	return nil
}

// window takes the substring of s from offset low to offset high from the
// end (high <= 0), clamping degenerate windows to empty.
func window(s string, low, high int) string {
	from := low
	to := len(s) + high
	if from > len(s) {
		from = len(s)
	}
	if to < from {
		to = from
	}
	return s[from:to]
}
