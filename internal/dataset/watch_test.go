package dataset

import (
	"context"
	"os"
	"testing"
	"time"
)

// startWatch runs Watch on path and returns a channel of delivered Tables.
// The brief sleep lets the watcher register before the test rewrites the file.
func startWatch(t *testing.T, ctx context.Context, path string) <-chan *Table {
	t.Helper()
	ch := make(chan *Table, 4)
	go func() {
		if err := Watch(ctx, path, func(tab *Table) { ch <- tab }); err != nil {
			t.Errorf("Watch: %v", err)
		}
	}()
	time.Sleep(200 * time.Millisecond)
	return ch
}

func rewrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}
}

func TestWatch_DeliversReloadedTable(t *testing.T) {
	p := writeCSV(t, "INSID,INSNAME\n1,Alpha U\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := startWatch(t, ctx, p)

	rewrite(t, p, "INSID,INSNAME\n1,Alpha U\n2,Beta Inst\n")

	select {
	case tab := <-ch:
		// A truncate-then-write save must deliver the settled file, never the
		// empty or partial intermediate state.
		if tab.Len() != 2 {
			t.Fatalf("reloaded rows: got %d, want 2", tab.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("onChange: no reload delivered")
	}
}

func TestWatch_BadRewriteKeepsPreviousTable(t *testing.T) {
	p := writeCSV(t, "INSID,INSNAME\n1,Alpha U\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := startWatch(t, ctx, p)

	// Ragged row — Load fails on inconsistent field counts. The truncate
	// phase of this rewrite passes through a loadable empty file; neither
	// state may reach onChange.
	rewrite(t, p, "INSID,INSNAME\n1\n")

	select {
	case tab := <-ch:
		t.Fatalf("onChange fired for malformed file (rows=%d)", tab.Len())
	case <-time.After(10 * debounceDelay):
	}

	// The watcher must still be alive: a good rewrite reloads as usual.
	rewrite(t, p, "INSID,INSNAME\n3,Gamma Tech\n")

	select {
	case tab := <-ch:
		if tab.Len() != 1 {
			t.Fatalf("reloaded rows: got %d, want 1", tab.Len())
		}
		if v, _ := tab.Row(0).Field("INSID"); v != int64(3) {
			t.Errorf("INSID: got %v, want int64 3", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("onChange: no reload after recovery")
	}
}
