package rect

import "strings"

// PaddingProfile is the minimal left/right whitespace margin common to a
// block: the largest margins that can be uniformly stripped without
// touching non-space content on any line. Derived, never persisted.
type PaddingProfile struct {
	MinLeft  int
	MinRight int
}

// AnalyzePadding measures the leading- and trailing-space runs of every
// non-blank line and returns the minima. Blank and all-whitespace lines
// (any whitespace, not just spaces) do not constrain the margins; an
// all-blank block yields (0, 0).
func AnalyzePadding(lines LineBlock) PaddingProfile {
	minLeft, minRight := -1, -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		left := len(line) - len(trimmed)
		right := len(trimmed) - len(strings.TrimRight(trimmed, " "))
		if minLeft < 0 || left < minLeft {
			minLeft = left
		}
		if minRight < 0 || right < minRight {
			minRight = right
		}
	}
	if minLeft < 0 {
		return PaddingProfile{}
	}
	return PaddingProfile{MinLeft: minLeft, MinRight: minRight}
}

// GuardWindow derives the substring window preserving at least one space of
// separation from adjacent untouched text, but no more padding than the
// source already carries. low is an offset from the start of each row, high
// an offset (<= 0) from its end. The literal thresholds are contract.
func (p PaddingProfile) GuardWindow() (low, high int) {
	low = p.MinLeft - 1
	if low < 0 {
		low = 0
	}
	high = -(p.MinRight - 1)
	if high > 0 {
		high = 0
	}
	return low, high
}
