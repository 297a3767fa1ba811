package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "TRIALDB.csv")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoad_TrimsHeaderWhitespace(t *testing.T) {
	p := writeCSV(t, " INSID , INSNAME ,CREDDESC\n1,Alpha U,Nursing\n")
	tab, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"INSID", "INSNAME", "CREDDESC"}
	cols := tab.Columns()
	if len(cols) != len(want) {
		t.Fatalf("columns: got %d, want %d", len(cols), len(want))
	}
	for i, c := range want {
		if cols[i] != c {
			t.Errorf("column %d: got %q, want %q", i, cols[i], c)
		}
	}
}

func TestLoad_ColumnTyping(t *testing.T) {
	p := writeCSV(t, "INSID,SCORE,CREDLEV,NOTES\n10,1.5,3,first\n20,2,4,\n")
	tab, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("rows: got %d, want 2", tab.Len())
	}

	r := tab.Row(0)
	if v, _ := r.Field("INSID"); v != int64(10) {
		t.Errorf("INSID: got %v (%T), want int64 10", v, v)
	}
	if v, _ := r.Field("SCORE"); v != 1.5 {
		t.Errorf("SCORE: got %v (%T), want float64 1.5", v, v)
	}
	if v, _ := r.Field("CREDLEV"); v != int64(3) {
		t.Errorf("CREDLEV: got %v (%T), want int64 3", v, v)
	}
	if v, _ := r.Field("NOTES"); v != "first" {
		t.Errorf("NOTES: got %v (%T), want string first", v, v)
	}

	// "2" in a column that also holds "1.5" is typed float, not int.
	if v, _ := tab.Row(1).Field("SCORE"); v != 2.0 {
		t.Errorf("SCORE row 1: got %v (%T), want float64 2", v, v)
	}
	// Empty cell is nil regardless of column type.
	if v, _ := tab.Row(1).Field("NOTES"); v != nil {
		t.Errorf("NOTES row 1: got %v, want nil", v)
	}
}

func TestLoad_EmptyCellsKeepIntKind(t *testing.T) {
	// An empty cell does not change the column kind, it just becomes nil.
	p := writeCSV(t, "INSID,NAME\n1,a\n,b\n2,c\n")
	tab, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := tab.Row(0).Field("INSID"); v != int64(1) {
		t.Errorf("INSID: got %v (%T), want int64 1", v, v)
	}
	if v, _ := tab.Row(1).Field("INSID"); v != nil {
		t.Errorf("INSID row 1: got %v, want nil", v)
	}
	if v, _ := tab.Row(2).Field("INSID"); v != int64(2) {
		t.Errorf("INSID row 2: got %v (%T), want int64 2", v, v)
	}
}

func TestLoad_MixedColumnIsString(t *testing.T) {
	p := writeCSV(t, "CREDLEV\n3\nPostgraduate\n")
	tab, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := tab.Row(0).Field("CREDLEV"); v != "3" {
		t.Errorf("CREDLEV: got %v (%T), want string \"3\"", v, v)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load: got %v, want fs.ErrNotExist", err)
	}
}

func TestLoad_HeaderOnly(t *testing.T) {
	p := writeCSV(t, "INSID,INSNAME\n")
	tab, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Len() != 0 {
		t.Errorf("rows: got %d, want 0", tab.Len())
	}
}

func TestRecord_MarshalPreservesColumnOrder(t *testing.T) {
	tab := New(
		[]string{"ZETA", "INSID", "ALPHA"},
		[][]any{{"z", int64(7), nil}},
	)
	b, err := tab.Row(0).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"ZETA":"z","INSID":7,"ALPHA":null}`
	if string(b) != want {
		t.Errorf("json: got %s, want %s", b, want)
	}
}

func TestField_UnknownColumn(t *testing.T) {
	tab := New([]string{"INSID"}, [][]any{{int64(1)}})
	if _, ok := tab.Row(0).Field("MISSING"); ok {
		t.Error("Field: expected ok=false for unknown column")
	}
}

func TestEmpty(t *testing.T) {
	tab := Empty()
	if tab.Len() != 0 {
		t.Errorf("Len: got %d, want 0", tab.Len())
	}
	if len(tab.Columns()) != 0 {
		t.Errorf("Columns: got %d, want 0", len(tab.Columns()))
	}
}
