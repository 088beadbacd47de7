package buffer

import "testing"

func TestMarkerTracksInsertedLines(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")
	m := b.NewMarker(Point{Line: 2, Column: 0})

	if err := b.InsertLines(1, []string{"x", "y"}); err != nil {
		t.Fatalf("InsertLines() error = %v", err)
	}
	if got := m.Point(); got != (Point{Line: 4, Column: 0}) {
		t.Errorf("marker = %v, want (4:0)", got)
	}
}

func TestMarkerTracksDeletedLines(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd")
	m := b.NewMarker(Point{Line: 3, Column: 1})

	if err := b.DeleteLines(1, 2); err != nil {
		t.Fatalf("DeleteLines() error = %v", err)
	}
	if got := m.Point(); got != (Point{Line: 1, Column: 1}) {
		t.Errorf("marker = %v, want (1:1)", got)
	}
}

func TestMarkerInsideDeletedLinesCollapses(t *testing.T) {
	b := NewBufferFromString("a\nb\nc\nd")
	m := b.NewMarker(Point{Line: 2, Column: 1})

	if err := b.DeleteLines(1, 2); err != nil {
		t.Fatalf("DeleteLines() error = %v", err)
	}
	if got := m.Point(); got != (Point{Line: 1, Column: 0}) {
		t.Errorf("marker = %v, want (1:0)", got)
	}
}

func TestMarkerTracksIntraLineSplice(t *testing.T) {
	b := NewBufferFromString("abcdef")
	after := b.NewMarker(Point{Line: 0, Column: 5})
	before := b.NewMarker(Point{Line: 0, Column: 1})

	// Replace "cd" with "XYZ": columns past the splice shift right by one.
	if err := b.ReplaceSlice(0, 2, 4, "XYZ"); err != nil {
		t.Fatalf("ReplaceSlice() error = %v", err)
	}
	if got := after.Point(); got.Column != 6 {
		t.Errorf("marker after splice = %v, want column 6", got)
	}
	if got := before.Point(); got.Column != 1 {
		t.Errorf("marker before splice = %v, want column 1", got)
	}
}

func TestMarkerSurvivesEditsBetweenStashAndRestore(t *testing.T) {
	// The persisted-rectangle scenario: a marker placed, arbitrary edits
	// above it, and the marked text is still under the marker.
	b := NewBufferFromString("header\nalpha\nbeta")
	m := b.NewMarker(Point{Line: 2, Column: 2})

	if err := b.InsertLines(0, []string{"// new comment"}); err != nil {
		t.Fatalf("InsertLines() error = %v", err)
	}
	if err := b.ReplaceSlice(1, 0, 6, "HEADER"); err != nil {
		t.Fatalf("ReplaceSlice() error = %v", err)
	}

	p := m.Point()
	if got := b.LineText(p.Line); got != "beta" {
		t.Errorf("marker line = %q, want %q", got, "beta")
	}
	if p.Column != 2 {
		t.Errorf("marker column = %d, want 2", p.Column)
	}
}

func TestMarkerRelease(t *testing.T) {
	b := NewBufferFromString("a\nb")
	m := b.NewMarker(Point{Line: 1, Column: 0})
	m.Release()

	if err := b.InsertLines(0, []string{"x"}); err != nil {
		t.Fatalf("InsertLines() error = %v", err)
	}
	if got := m.Point(); got != (Point{Line: 1, Column: 0}) {
		t.Errorf("released marker = %v, want unchanged (1:0)", got)
	}
}
