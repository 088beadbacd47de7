package rect

import "github.com/rectmode/rectmode/internal/engine/buffer"

// shiftPointColumns translates only the active point n columns right
// (negative = left), clamping at column 0. Horizontal movement lands on an
// explicit column, so the point's crutch is dropped.
func (r Rectangle) shiftPointColumns(n int) Rectangle {
	col := r.Point.Pos.Column + n
	if col < 0 {
		col = 0
	}
	r.Point.Pos.Column = col
	r.Point.Crutch = 0
	r.Point.HasCrutch = false
	return r
}

// ShiftColumns translates both endpoints n columns right (negative = left).
// Each endpoint clamps at column 0 independently. There is no clamp on the
// right: moving past the end of a sparse line is a legal virtual position.
// The move is applied to the point, then the roles are swapped and the move
// repeated, so both endpoints travel symmetrically regardless of which is
// the active point.
func (r Rectangle) ShiftColumns(n int) Rectangle {
	r = r.shiftPointColumns(n)
	r = r.CycleCorner()
	r = r.shiftPointColumns(n)
	return r.CycleCorner()
}

// shiftPointRows translates only the active point n rows down (negative =
// up), clamped to the buffer. The endpoint seeks its goal column (the
// crutch when one is set, the current column otherwise) and records a new
// crutch whenever the destination line is too short to reach it.
func (r Rectangle) shiftPointRows(buf *buffer.Buffer, n int) Rectangle {
	line := r.Point.Pos.Line + n
	if line < 0 {
		line = 0
	}
	if last := buf.LineCount() - 1; line > last {
		line = last
	}

	goal := r.Point.goal()
	length := buf.LineLen(line)
	r.Point.Pos.Line = line
	if goal > length {
		r.Point.Pos.Column = length
		r.Point.Crutch = goal
		r.Point.HasCrutch = true
	} else {
		r.Point.Pos.Column = goal
		r.Point.Crutch = 0
		r.Point.HasCrutch = false
	}
	return r
}

// ShiftRows translates both endpoints n rows down (negative = up). Corner
// crutches are preserved through lines of varying length: this is the "next
// logical line" primitive, not "next line re-measuring from column 0".
func (r Rectangle) ShiftRows(buf *buffer.Buffer, n int) Rectangle {
	r = r.shiftPointRows(buf, n)
	r = r.CycleCorner()
	r = r.shiftPointRows(buf, n)
	return r.CycleCorner()
}
