package rect

import (
	"errors"
	"strings"

	"github.com/rectmode/rectmode/internal/engine/buffer"
)

// ErrFillWidth is returned when a reflow is requested at a non-positive width.
var ErrFillWidth = errors.New("fill width must be positive")

// Fill re-wraps the rectangle's text to the target width and returns the
// resulting rectangle, which starts at the same top-left corner and may be
// taller than the original. When the reflowed text needs more rows than the
// rectangle spans, blank lines are opened below it first, so surrounding
// text is pushed down rather than overwritten.
func Fill(buf *buffer.Buffer, r Rectangle, width int) (Rectangle, error) {
	if width <= 0 {
		return Rectangle{}, ErrFillWidth
	}
	top, left, bottom, _ := r.Bounds()
	height := bottom - top + 1

	block, err := CutBlock(buf, r)
	if err != nil {
		return Rectangle{}, err
	}

	// One logical paragraph: rows joined by single spaces, then reflowed
	// with an unbounded width to collapse existing hard breaks into a
	// single run before the real wrap.
	paragraph := strings.Join(wrap(strings.Join(block, " "), int(^uint(0)>>1)), " ")
	reflowed := LineBlock(wrap(paragraph, width))
	grown := len(reflowed)

	if grown > height {
		blanks := make([]string, grown-height)
		if err := buf.InsertLines(bottom+1, blanks); err != nil {
			return Rectangle{}, err
		}
	}

	rows := grown
	if height > rows {
		rows = height
	}
	// Extraction already deleted the old slice, so the reinsert is the
	// degenerate rebuild: a pure insertion at the left edge.
	if err := Rebuild(buf, top, top+rows-1, left, left, &reflowed, width, 0, 0); err != nil {
		return Rectangle{}, err
	}

	return Rectangle{
		Mark:  Endpoint{Pos: buffer.Point{Line: top, Column: left}},
		Point: Endpoint{Pos: buffer.Point{Line: top + grown - 1, Column: left + width}},
	}, nil
}

// wrap greedily breaks s into lines of at most width bytes, never splitting
// a word. A word longer than width occupies a line by itself.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}
