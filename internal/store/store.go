package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/credatlas/credatlas/internal/dataset"
)

// NotFoundError reports a ByInstitution lookup that matched no records.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no records found for INSID %d", e.ID)
}

// Query is the parameter set for List. Empty filter strings pass all records.
// Page and Size must already be validated by the caller: Page ≥ 1,
// 1 ≤ Size ≤ 100. The store trusts them.
type Query struct {
	InsName  string // case-insensitive substring filter on INSNAME
	CredDesc string // case-insensitive substring filter on CREDDESC
	Page     int
	Size     int
}

// Stats is the aggregate view over the full dataset.
type Stats struct {
	UniqueInstitutions int
	UniqueCredentials  int

	// CredentialLevels holds the distinct CREDLEV values in first-occurrence
	// order, nulls included. Never nil.
	CredentialLevels []any
}

// Store holds the current dataset generation. All methods are safe for
// concurrent use; readers capture the Table pointer once and never observe
// a half-swapped state.
type Store struct {
	mu    sync.RWMutex
	table *dataset.Table
}

// New creates a Store serving the given Table.
func New(t *dataset.Table) *Store {
	return &Store{table: t}
}

// Replace swaps in a new Table. In-flight queries keep the Table they
// captured.
func (s *Store) Replace(t *dataset.Table) {
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}

func (s *Store) snapshot() *dataset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Len returns the total number of records, unfiltered.
func (s *Store) Len() int {
	return s.snapshot().Len()
}

// List applies q's filters as a logical AND in source row order, then cuts
// the window at zero-based offset (Page-1)*Size. It returns the window and
// the filtered count before windowing. A window past the end of the filtered
// set is empty, not an error. The returned slice is never nil.
func (s *Store) List(q Query) ([]dataset.Record, int) {
	t := s.snapshot()

	matched := make([]dataset.Record, 0)
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if !matchSubstring(r, dataset.ColInstitutionName, q.InsName) {
			continue
		}
		if !matchSubstring(r, dataset.ColCredentialDesc, q.CredDesc) {
			continue
		}
		matched = append(matched, r)
	}

	total := len(matched)
	start := (q.Page - 1) * q.Size
	if start >= total {
		return matched[:0], total
	}
	end := start + q.Size
	if end > total {
		end = total
	}
	return matched[start:end], total
}

// ByInstitution returns every record whose INSID cell equals id, in source
// row order. INSID is not unique, so the result may hold many records.
// Zero matches is a *NotFoundError.
func (s *Store) ByInstitution(id int64) ([]dataset.Record, error) {
	t := s.snapshot()

	matched := make([]dataset.Record, 0)
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		v, ok := r.Field(dataset.ColInstitutionID)
		if !ok || !numericEqual(v, id) {
			continue
		}
		matched = append(matched, r)
	}
	if len(matched) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return matched, nil
}

// Stats aggregates over the full dataset, ignoring any filter. Null cells do
// not count toward the unique totals, matching the loader's treatment of
// empty cells as missing values.
func (s *Store) Stats() Stats {
	t := s.snapshot()

	names := make(map[any]struct{})
	creds := make(map[any]struct{})
	levelsSeen := make(map[any]struct{})
	levels := make([]any, 0)

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if v, ok := r.Field(dataset.ColInstitutionName); ok && v != nil {
			names[v] = struct{}{}
		}
		if v, ok := r.Field(dataset.ColCredentialDesc); ok && v != nil {
			creds[v] = struct{}{}
		}
		if v, ok := r.Field(dataset.ColCredentialLevel); ok {
			if _, seen := levelsSeen[v]; !seen {
				levelsSeen[v] = struct{}{}
				levels = append(levels, v)
			}
		}
	}

	return Stats{
		UniqueInstitutions: len(names),
		UniqueCredentials:  len(creds),
		CredentialLevels:   levels,
	}
}

// matchSubstring reports whether the record's cell in column col contains
// needle, case-insensitively. An empty needle passes everything. Null and
// non-string cells never match a non-empty needle.
func matchSubstring(r dataset.Record, col, needle string) bool {
	if needle == "" {
		return true
	}
	v, ok := r.Field(col)
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}

// numericEqual compares an int64 or float64 cell against id. The loader may
// type an ID column as float64 when it contains empty cells, so both forms
// count as equal.
func numericEqual(v any, id int64) bool {
	switch n := v.(type) {
	case int64:
		return n == id
	case float64:
		return n == float64(id)
	default:
		return false
	}
}
