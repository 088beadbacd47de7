package buffer

// Marker is a durable position that tracks buffer edits. Unlike a raw
// Point, a marker stays attached to the text around it as lines are
// inserted, deleted, and spliced. Persisted positions (rectangle snapshots)
// use markers; transient in-flight computations use raw points.
type Marker struct {
	buf *Buffer
	pos Point
}

// NewMarker creates a marker at the given point. The marker is adjusted on
// every subsequent buffer mutation until Release is called.
func (b *Buffer) NewMarker(p Point) *Marker {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := &Marker{buf: b, pos: p}
	b.markers = append(b.markers, m)
	return m
}

// Point returns the marker's current position.
func (m *Marker) Point() Point {
	m.buf.mu.RLock()
	defer m.buf.mu.RUnlock()
	return m.pos
}

// MoveTo repositions the marker.
func (m *Marker) MoveTo(p Point) {
	m.buf.mu.Lock()
	defer m.buf.mu.Unlock()
	m.pos = p
}

// Release detaches the marker from its buffer. A released marker keeps its
// last position but no longer tracks edits.
func (m *Marker) Release() {
	m.buf.mu.Lock()
	defer m.buf.mu.Unlock()
	for i, other := range m.buf.markers {
		if other == m {
			m.buf.markers = append(m.buf.markers[:i], m.buf.markers[i+1:]...)
			break
		}
	}
}
