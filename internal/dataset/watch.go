package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits after the last write event
// before reloading. Saves are rarely atomic — a truncate-then-write emits a
// burst of events, and reloading on the first one would observe a partially
// written file (a CSV prefix is still valid CSV). Coalescing the burst means
// Load only ever sees the settled file.
const debounceDelay = 100 * time.Millisecond

// Watch monitors path for changes and calls onChange with the freshly loaded
// Table once the file has settled after a write. It runs until ctx is
// cancelled.
//
// If a reload fails (e.g., malformed rows), the error is logged and the
// previous Table remains active — Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Table)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("dataset: watching for changes", "path", path)

	// Pending debounced reload; nil means none scheduled. Each new event
	// replaces the channel, so only the timer armed by the last event in a
	// burst ever fires.
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only reload on write or create events. Editors often write via
			// rename (atomic save), so also catch fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload = time.After(debounceDelay)

		case <-reload:
			reload = nil

			t, err := Load(path)
			if err != nil {
				slog.Error("dataset: reload failed — keeping previous table",
					"path", path, "err", err)
				continue
			}

			slog.Info("dataset: reloaded", "path", path, "rows", t.Len())
			onChange(t)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("dataset: watcher error", "err", err)
		}
	}
}
