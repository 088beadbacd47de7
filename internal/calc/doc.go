// Package calc implements the matrix exchange protocol: two-way transfer
// of a rectangle's content between the text buffer and an external
// stack-based matrix machine, including parsing the machine's printed
// output, reconciling row-count mismatches, and realigning numeric columns
// through the guard-space window on reinsertion.
package calc
