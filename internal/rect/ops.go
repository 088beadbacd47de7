package rect

import "strings"

// TrimWhitespace strips the uniform left margin common to every non-blank
// row of the rectangle, shifting the rows' content against the left edge.
// Returns the measured profile and the rectangle narrowed by the amount
// stripped.
func (c *Context) TrimWhitespace() (PaddingProfile, error) {
	r, ok := c.Active()
	if !ok {
		return PaddingProfile{}, ErrNoRectangle
	}
	profile := AnalyzePadding(ReadBlock(c.buf, r))
	if profile.MinLeft == 0 {
		return profile, nil
	}
	top, left, bottom, _ := r.Bounds()
	for line := top; line <= bottom; line++ {
		if err := c.buf.ReplaceSlice(line, left, left+profile.MinLeft, ""); err != nil {
			return profile, err
		}
	}
	c.SetActive(r.narrowRight(profile.MinLeft))
	return profile, nil
}

// narrowRight pulls the rectangle's right edge left by n columns, not past
// the left edge.
func (r Rectangle) narrowRight(n int) Rectangle {
	_, left, _, right := r.Bounds()
	target := right - n
	if target < left {
		target = left
	}
	if r.Mark.Pos.Column > r.Point.Pos.Column {
		r.Mark.Pos.Column = target
	} else {
		r.Point.Pos.Column = target
	}
	return r
}

// StringRectangle replaces each row's slice with the given string. The
// rectangle's right edge moves to fit the replacement.
func (c *Context) StringRectangle(s string) error {
	r, ok := c.Active()
	if !ok {
		return ErrNoRectangle
	}
	top, left, bottom, right := r.Bounds()
	for line := top; line <= bottom; line++ {
		if err := c.buf.ReplaceSlice(line, left, right, s); err != nil {
			return err
		}
	}
	if left+len(s) != right {
		r = r.setRight(left + len(s))
		c.SetActive(r)
	}
	return nil
}

// setRight moves whichever endpoint holds the right edge to the column.
func (r Rectangle) setRight(col int) Rectangle {
	if r.Mark.Pos.Column > r.Point.Pos.Column {
		r.Mark.Pos.Column = col
	} else {
		r.Point.Pos.Column = col
	}
	return r
}

// OpenRectangle inserts a blank block, shifting existing text on each row
// to the right of the rectangle.
func (c *Context) OpenRectangle() error {
	r, ok := c.Active()
	if !ok {
		return ErrNoRectangle
	}
	top, left, bottom, right := r.Bounds()
	blank := strings.Repeat(" ", right-left)
	for line := top; line <= bottom; line++ {
		if err := c.buf.ReplaceSlice(line, left, left, blank); err != nil {
			return err
		}
	}
	return nil
}

// ClearRectangle blanks the rectangle's content without moving
// neighboring text.
func (c *Context) ClearRectangle() error {
	r, ok := c.Active()
	if !ok {
		return ErrNoRectangle
	}
	top, left, bottom, right := r.Bounds()
	blank := strings.Repeat(" ", right-left)
	for line := top; line <= bottom; line++ {
		if err := c.buf.ReplaceSlice(line, left, right, blank); err != nil {
			return err
		}
	}
	return nil
}
