package rect

import (
	"fmt"

	"github.com/rectmode/rectmode/internal/engine/buffer"
)

// Endpoint is one corner of a rectangle: a buffer position plus an optional
// corner crutch. The crutch remembers the preferred column when vertical
// movement crosses lines shorter than the rectangle edge, so the edge does
// not visually jump.
type Endpoint struct {
	Pos       buffer.Point
	Crutch    int
	HasCrutch bool
}

// goal returns the column the endpoint is trying to occupy.
func (e Endpoint) goal() int {
	if e.HasCrutch {
		return e.Crutch
	}
	return e.Pos.Column
}

// Rectangle is an active rectangular selection defined by two endpoints.
// Mark is the anchor; Point is the active end subsequent single-ended
// operations act on. Neither ordering nor width sign is normalized; callers
// use Bounds for non-negative geometry.
type Rectangle struct {
	Mark  Endpoint
	Point Endpoint
}

// New creates a zero-size rectangle with both endpoints at p.
func New(p buffer.Point) Rectangle {
	e := Endpoint{Pos: p}
	return Rectangle{Mark: e, Point: e}
}

// Dimensions returns the column span and line span of the rectangle.
// Width is the signed column delta between endpoints; callers must
// normalize before using it as a size. Height is inclusive and always >= 1.
func (r Rectangle) Dimensions() (width, height int) {
	width = r.Point.Pos.Column - r.Mark.Pos.Column
	height = r.Point.Pos.Line - r.Mark.Pos.Line
	if height < 0 {
		height = -height
	}
	return width, height + 1
}

// Bounds returns the normalized corners: top <= bottom, left <= right.
func (r Rectangle) Bounds() (top, left, bottom, right int) {
	top, bottom = r.Mark.Pos.Line, r.Point.Pos.Line
	if top > bottom {
		top, bottom = bottom, top
	}
	left, right = r.Mark.Pos.Column, r.Point.Pos.Column
	if left > right {
		left, right = right, left
	}
	return top, left, bottom, right
}

// CycleCorner swaps which endpoint is the active point. Swapping never
// alters the rectangle's bounds, only which corner single-ended operations
// treat as anchor. It is its own inverse.
func (r Rectangle) CycleCorner() Rectangle {
	return Rectangle{Mark: r.Point, Point: r.Mark}
}

// String returns a human-readable representation of the rectangle.
func (r Rectangle) String() string {
	return fmt.Sprintf("Rect(%s..%s)", r.Mark.Pos, r.Point.Pos)
}
