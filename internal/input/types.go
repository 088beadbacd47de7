// Package input defines the action values the modal surface dispatches.
package input

// ActionSource indicates where an action originated.
type ActionSource uint8

const (
	// SourceKey is an action produced by a key binding.
	SourceKey ActionSource = iota
	// SourceScript is an action produced by the scripting surface.
	SourceScript
	// SourceInternal is an action produced by the editor itself.
	SourceInternal
)

// Action represents a command to be executed by the dispatcher. Every
// operation is invokable by name with a single numeric-or-absent argument:
// the count.
type Action struct {
	// Name is the command identifier (e.g., "rect.shiftDown", "calc.yank").
	Name string

	// Count is the repeat count / prefix argument. Zero means absent;
	// handlers substitute their per-operation default.
	Count int

	// Text carries the string argument of the few operations that take
	// one (e.g., "rect.string").
	Text string

	// Source indicates where this action originated.
	Source ActionSource
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// WithText returns a copy of the action with the specified text argument.
func (a Action) WithText(text string) Action {
	a.Text = text
	return a
}
