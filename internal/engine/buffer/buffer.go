package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrRangeInvalid   = errors.New("invalid range")
)

// Buffer is a line-table text buffer. It provides the text-splicing
// primitives rectangle operations are built on: per-line slice reads with
// virtual right-hand padding, per-line slice replacement, whole-line
// insertion and deletion, and durable markers that track edits.
// All methods are thread-safe.
type Buffer struct {
	mu      sync.RWMutex
	lines   []string
	markers []*Marker
}

// NewBuffer creates a new empty buffer (a single empty line).
func NewBuffer() *Buffer {
	return &Buffer{lines: []string{""}}
}

// NewBufferFromString creates a buffer with initial content.
// Line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return &Buffer{lines: strings.Split(s, "\n")}
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a specific line (without newline).
// Out-of-range lines read as empty.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return len(b.lines[line])
}

// ClampPoint returns the point clamped to a valid line. The column is only
// clamped below zero; columns past the end of the line are legal virtual
// positions.
func (b *Buffer) ClampPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Column < 0 {
		p.Column = 0
	}
	return p
}

// SliceLine reads the [from, to) column slice of a line, padded with spaces
// where the line is shorter than the requested slice.
func (b *Buffer) SliceLine(line, from, to int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) || to <= from {
		return strings.Repeat(" ", max(0, to-from))
	}
	text := b.lines[line]
	var sb strings.Builder
	sb.Grow(to - from)
	for col := from; col < to; col++ {
		if col < len(text) {
			sb.WriteByte(text[col])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// ReplaceSlice replaces the [from, to) column slice of a line with s,
// padding with spaces when the slice begins past the end of the line.
func (b *Buffer) ReplaceSlice(line, from, to int, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if line < 0 || line >= len(b.lines) {
		return ErrLineOutOfRange
	}
	if to < from {
		return ErrRangeInvalid
	}
	text := b.lines[line]
	switch {
	case from > len(text):
		var sb strings.Builder
		sb.WriteString(text)
		for i := len(text); i < from; i++ {
			sb.WriteByte(' ')
		}
		sb.WriteString(s)
		b.lines[line] = sb.String()
	case to > len(text):
		b.lines[line] = text[:from] + s
	default:
		b.lines[line] = text[:from] + s + text[to:]
	}
	b.adjustSliceMarkers(line, from, to, len(s))
	return nil
}

// InsertLines inserts lines before the given line index.
// An index equal to LineCount appends at the end.
func (b *Buffer) InsertLines(at int, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at < 0 || at > len(b.lines) {
		return ErrLineOutOfRange
	}
	if len(lines) == 0 {
		return nil
	}
	b.lines = append(b.lines[:at], append(append([]string{}, lines...), b.lines[at:]...)...)
	for _, m := range b.markers {
		if m.pos.Line >= at {
			m.pos.Line += len(lines)
		}
	}
	return nil
}

// DeleteLines removes n lines starting at the given line index.
// The buffer always retains at least one (possibly empty) line.
func (b *Buffer) DeleteLines(at, n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at < 0 || at >= len(b.lines) || n < 0 {
		return ErrLineOutOfRange
	}
	if at+n > len(b.lines) {
		n = len(b.lines) - at
	}
	b.lines = append(b.lines[:at], b.lines[at+n:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	for _, m := range b.markers {
		switch {
		case m.pos.Line >= at+n:
			m.pos.Line -= n
		case m.pos.Line >= at:
			m.pos.Line = at
			m.pos.Column = 0
		}
		if m.pos.Line >= len(b.lines) {
			m.pos.Line = len(b.lines) - 1
		}
	}
	return nil
}

// Insert inserts text at a point. The text may contain newlines; the
// column may be a virtual position past the end of the line, in which case
// the line is space-padded first.
func (b *Buffer) Insert(p Point, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrLineOutOfRange
	}
	line := b.lines[p.Line]
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		line = line + strings.Repeat(" ", col-len(line))
	}
	head, tail := line[:col], line[col:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[p.Line] = head + text + tail
		b.adjustSliceMarkers(p.Line, col, col, len(text))
		return nil
	}

	newLines := make([]string, len(parts))
	newLines[0] = head + parts[0]
	copy(newLines[1:], parts[1:])
	last := len(newLines) - 1
	newLines[last] += tail
	b.lines = append(b.lines[:p.Line], append(newLines, b.lines[p.Line+1:]...)...)

	added := len(parts) - 1
	for _, m := range b.markers {
		switch {
		case m.pos.Line > p.Line:
			m.pos.Line += added
		case m.pos.Line == p.Line && m.pos.Column >= col:
			m.pos.Line += added
			m.pos.Column = m.pos.Column - col + len(parts[added])
		}
	}
	return nil
}

// DeleteRange removes the text between two points.
func (b *Buffer) DeleteRange(start, end Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if end.Before(start) {
		return ErrRangeInvalid
	}
	if start.Line < 0 || end.Line >= len(b.lines) {
		return ErrLineOutOfRange
	}
	if start.Line == end.Line {
		line := b.lines[start.Line]
		from, to := min(start.Column, len(line)), min(end.Column, len(line))
		b.lines[start.Line] = line[:from] + line[to:]
		b.adjustSliceMarkers(start.Line, from, to, 0)
		return nil
	}

	first := b.lines[start.Line]
	lastLine := b.lines[end.Line]
	from := min(start.Column, len(first))
	to := min(end.Column, len(lastLine))
	b.lines[start.Line] = first[:from] + lastLine[to:]
	b.lines = append(b.lines[:start.Line+1], b.lines[end.Line+1:]...)

	removed := end.Line - start.Line
	for _, m := range b.markers {
		switch {
		case m.pos.Line > end.Line:
			m.pos.Line -= removed
		case m.pos.Line > start.Line || (m.pos.Line == start.Line && m.pos.Column > from):
			m.pos = Point{Line: start.Line, Column: from}
		}
	}
	return nil
}

// PointToOffset converts a line/column position to a byte offset, treating
// newlines as single bytes. Virtual columns clamp to the line end.
func (b *Buffer) PointToOffset(p Point) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 {
		return 0
	}
	off := 0
	for i := 0; i < p.Line && i < len(b.lines); i++ {
		off += len(b.lines[i]) + 1
	}
	if p.Line < len(b.lines) {
		off += min(max(p.Column, 0), len(b.lines[p.Line]))
	}
	return off
}

// OffsetToPoint converts a byte offset to a line/column position.
func (b *Buffer) OffsetToPoint(offset int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 {
		return Point{}
	}
	for i, line := range b.lines {
		if offset <= len(line) {
			return Point{Line: i, Column: offset}
		}
		offset -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Point{Line: last, Column: len(b.lines[last])}
}

// adjustSliceMarkers updates markers after an intra-line splice replacing
// [from, to) with replaceLen bytes. Callers must hold the write lock.
func (b *Buffer) adjustSliceMarkers(line, from, to, replaceLen int) {
	delta := replaceLen - (to - from)
	for _, m := range b.markers {
		if m.pos.Line != line {
			continue
		}
		switch {
		case m.pos.Column >= to:
			m.pos.Column += delta
			if m.pos.Column < from {
				m.pos.Column = from
			}
		case m.pos.Column > from:
			m.pos.Column = from + replaceLen
		}
	}
}
