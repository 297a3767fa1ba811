package dataset

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

// Well-known column names of the TRIALDB schema. The loader does not require
// them — a file without these columns still loads, the dependent queries just
// match nothing.
const (
	ColInstitutionID   = "INSID"
	ColInstitutionName = "INSNAME"
	ColCredentialDesc  = "CREDDESC"
	ColCredentialLevel = "CREDLEV"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Table is the full dataset: ordered columns and rows in source-file order.
// It is immutable after construction; concurrent readers need no locking.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]any
}

// New builds a Table from pre-typed cell values. Every row must have exactly
// len(columns) cells. Mainly useful for tests; production tables come from Load.
func New(columns []string, rows [][]any) *Table {
	t := &Table{
		cols:  append([]string(nil), columns...),
		index: make(map[string]int, len(columns)),
		rows:  rows,
	}
	for i, c := range t.cols {
		t.index[c] = i
	}
	return t
}

// Empty returns a Table with no columns and no rows — the stand-in used when
// the backing file is absent at startup.
func Empty() *Table {
	return New(nil, nil)
}

// Columns returns the column names in source order. Callers must not modify
// the returned slice.
func (t *Table) Columns() []string { return t.cols }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Column returns the index of the named column and whether it exists.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Row returns a view of row i. Panics if i is out of range, like slice indexing.
func (t *Table) Row(i int) Record {
	return Record{table: t, row: i}
}

// Record is a read-only view of one Table row. The zero value is not valid;
// obtain Records from Table.Row.
type Record struct {
	table *Table
	row   int
}

// Field returns the cell value for the named column and whether the column
// exists. A nil value with ok == true is a null cell.
func (r Record) Field(name string) (any, bool) {
	i, ok := r.table.index[name]
	if !ok {
		return nil, false
	}
	return r.table.rows[r.row][i], true
}

// MarshalJSON encodes the row as an object whose keys appear in source column
// order. A plain map would serialize with sorted keys and lose the file's
// column layout.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.table.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.table.rows[r.row][i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
