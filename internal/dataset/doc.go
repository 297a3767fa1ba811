// Package dataset loads the TRIALDB delimited file into an immutable
// in-memory Table and provides row access for querying.
//
// Load(path) reads the file once, trims header whitespace, and infers a type
// per column: int64 if every non-empty cell parses as an integer, float64 if
// every non-empty cell parses as a number, string otherwise. Empty cells
// become nil regardless of column type. Columns the code knows nothing about
// pass through unchanged.
//
// A Table is never mutated after construction. Record is a cheap row view
// whose JSON form preserves the source file's column order.
//
// Watch(ctx, path, onChange) optionally re-loads the file on write events and
// hands the freshly built Table to onChange; it never mutates a Table that
// has already been handed out.
package dataset
