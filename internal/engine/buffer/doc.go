// Package buffer provides the line-table text buffer rectangle operations
// splice into, including durable markers that survive edits.
package buffer
