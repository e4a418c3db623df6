package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watch blocks watching the config file and invokes run after every change,
// debounced so editors that write in bursts trigger a single regeneration.
// It returns when ctx is cancelled.
//
// The watch is on the parent directory, not the file: editors that save by
// rename-replace (vim, anything using an atomic write) swap the inode, and a
// file-level watch dies with the old inode. Events are filtered back down to
// the config file by name.
func Watch(ctx context.Context, path string, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("runner: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("runner: watch %s: %w", dir, err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			// Write covers in-place saves; Create covers the replacement
			// file landing after a rename-replace save.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("runner: watch %s: %w", dir, err)
		}
	}
}
