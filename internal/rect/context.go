package rect

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/rectmode/rectmode/internal/engine/buffer"
)

// Errors returned by rectangle state operations.
var (
	ErrNoRectangle       = errors.New("no active rectangle")
	ErrNoStoredRectangle = errors.New("no stored rectangle")
)

// lastRectangle is the persisted snapshot of the most recent rectangle.
// The endpoints are durable markers so the snapshot survives arbitrary
// edits between being stashed and being restored; the crutches are copied
// verbatim. One snapshot exists per context and is overwritten in place.
type lastRectangle struct {
	mark, point               *buffer.Marker
	markCrutch, pointCrutch   int
	hasMarkCrutch, hasPointCr bool
}

// Context owns the rectangle state of one buffer: the active rectangle, if
// any, and the single LastRectangle snapshot. A mutex guards the state so
// deferred reactivation running on the event loop goroutine can overlap
// reads from the dispatching goroutine.
type Context struct {
	mu     sync.Mutex
	id     string
	buf    *buffer.Buffer
	active *Rectangle
	last   *lastRectangle
}

// NewContext creates a rectangle context for a buffer.
func NewContext(buf *buffer.Buffer) *Context {
	return &Context{id: uuid.New().String(), buf: buf}
}

// ID returns the context's unique identity.
func (c *Context) ID() string { return c.id }

// Buffer returns the buffer this context edits.
func (c *Context) Buffer() *buffer.Buffer { return c.buf }

// Active returns the active rectangle, if one exists.
func (c *Context) Active() (Rectangle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Rectangle{}, false
	}
	return *c.active, true
}

// SetActive replaces the active rectangle.
func (c *Context) SetActive(r Rectangle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setActiveLocked(r)
}

func (c *Context) setActiveLocked(r Rectangle) {
	rc := r
	c.active = &rc
}

// Restart abandons the current selection and begins a new zero-size
// rectangle anchored at the given position.
func (c *Context) Restart(p buffer.Point) Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := New(c.buf.ClampPoint(p))
	c.setActiveLocked(r)
	return r
}

// Stash records the active rectangle's endpoints and crutches into the
// persisted snapshot, reusing the snapshot's marker storage when present so
// its identity is stable across repeated stashes.
func (c *Context) Stash() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stashLocked()
}

func (c *Context) stashLocked() error {
	if c.active == nil {
		return ErrNoRectangle
	}
	r := *c.active
	if c.last == nil {
		c.last = &lastRectangle{
			mark:  c.buf.NewMarker(r.Mark.Pos),
			point: c.buf.NewMarker(r.Point.Pos),
		}
	} else {
		c.last.mark.MoveTo(r.Mark.Pos)
		c.last.point.MoveTo(r.Point.Pos)
	}
	c.last.markCrutch, c.last.hasMarkCrutch = r.Mark.Crutch, r.Mark.HasCrutch
	c.last.pointCrutch, c.last.hasPointCr = r.Point.Crutch, r.Point.HasCrutch
	return nil
}

// RestoreLast reactivates a rectangle at the snapshot's endpoints and
// crutches. Returns ErrNoStoredRectangle if nothing has been stashed yet.
func (c *Context) RestoreLast() (Rectangle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Rectangle{}, ErrNoStoredRectangle
	}
	r := Rectangle{
		Mark: Endpoint{
			Pos:       c.last.mark.Point(),
			Crutch:    c.last.markCrutch,
			HasCrutch: c.last.hasMarkCrutch,
		},
		Point: Endpoint{
			Pos:       c.last.point.Point(),
			Crutch:    c.last.pointCrutch,
			HasCrutch: c.last.hasPointCr,
		},
	}
	c.setActiveLocked(r)
	return r, nil
}

// Deactivate stashes the active rectangle, if any, and clears it.
func (c *Context) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		_ = c.stashLocked()
		c.active = nil
	}
}
