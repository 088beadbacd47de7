package calc

// Format parameterizes how the matrix machine prints its top-of-stack
// value. Rectangle yanks always request bracket-free, fully expanded rows
// so every printed line is a plain token row.
type Format struct {
	// NoBrackets suppresses vector/matrix bracket syntax.
	NoBrackets bool

	// ExpandVectors disables ellipsis abbreviation of long vectors.
	ExpandVectors bool

	// Precision is the number of significant digits to print.
	Precision int
}

// Machine is the external matrix stack machine at its interface boundary: a
// stack-based value store that accepts a 2-D token block and prints its top
// value as formatted text. The machine's arithmetic and value-formatting
// rules are its own; this package only speaks the exchange protocol.
type Machine interface {
	// PushMatrix parses a block of numeric token rows and pushes the
	// resulting matrix.
	PushMatrix(rows [][]string) error

	// TopAsText returns the top-of-stack value printed per the format.
	// Returns an error when the stack is empty.
	TopAsText(f Format) (string, error)
}

// RowReducer is implemented by machines that can reduce the top matrix to
// its per-row sums.
type RowReducer interface {
	SumRows() error
}

// ColumnReducer is implemented by machines that can reduce the top matrix
// to its per-column sums.
type ColumnReducer interface {
	SumColumns() error
}
