package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Load reads the delimited file at path and builds a typed Table.
//
// Header cells are whitespace-trimmed. Body cells are typed per column (see
// package doc); the raw text of columns that stay strings is kept untouched.
// A missing file is reported via the wrapped os error so callers can choose
// to serve an empty dataset instead of failing startup.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	raw, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
	}
	if len(raw) == 0 {
		return Empty(), nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := typeRows(len(header), raw[1:])
	return New(header, rows), nil
}

// columnKind is the inferred storage type of one column.
type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindString
)

// typeRows infers a kind per column over all body rows, then converts every
// cell. Empty cells become nil in every kind.
func typeRows(ncols int, body [][]string) [][]any {
	kinds := make([]columnKind, ncols)
	for c := 0; c < ncols; c++ {
		kinds[c] = inferKind(body, c)
	}

	rows := make([][]any, len(body))
	for i, rec := range body {
		row := make([]any, ncols)
		for c := 0; c < ncols; c++ {
			if c < len(rec) {
				row[c] = typeCell(kinds[c], rec[c])
			}
		}
		rows[i] = row
	}
	return rows
}

// inferKind scans column c across all body rows. The kind only narrows:
// one non-integer cell demotes int to float, one non-numeric cell demotes
// the whole column to string.
func inferKind(body [][]string, c int) columnKind {
	kind := kindInt
	for _, rec := range body {
		if c >= len(rec) {
			continue
		}
		s := strings.TrimSpace(rec[c])
		if s == "" {
			continue
		}
		if kind == kindInt {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			kind = kindFloat
		}
		if kind == kindFloat {
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				continue
			}
			kind = kindString
		}
		if kind == kindString {
			return kindString
		}
	}
	return kind
}

func typeCell(kind columnKind, raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch kind {
	case kindInt:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case kindFloat:
		v, _ := strconv.ParseFloat(s, 64)
		return v
	default:
		return raw
	}
}
