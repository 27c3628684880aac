package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches rapid file events (editor save bursts) into one
// change notification.
const DefaultDebounce = 250 * time.Millisecond

// relevantExtensions are the source file types that trigger a re-run
var relevantExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".vue": true,
}

// Watcher watches project roots for source changes
type Watcher struct {
	roots    []string
	skipDirs map[string]bool
	debounce time.Duration
}

// NewWatcher creates a Watcher over the given roots
func NewWatcher(roots []string, skipDirs []string) *Watcher {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Watcher{
		roots:    roots,
		skipDirs: skipMap,
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the debounce window
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watch blocks until ctx is cancelled, invoking onChange with the batch of
// changed paths after each debounce window. On cancellation the underlying
// file-system watcher and the pending debounce timer are released before
// returning ctx.Err(); no change notification is delivered for an aborted
// window.
func (w *Watcher) Watch(ctx context.Context, onChange func(paths []string)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsWatcher.Close()

	for _, root := range w.roots {
		if err := w.addRecursive(fsWatcher, root); err != nil {
			return err
		}
	}

	var pending []string
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			// New directories need to be added to the watch set
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					w.addRecursive(fsWatcher, event.Name)
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			pending = append(pending, event.Name)
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) > 0 {
				batch := pending
				pending = nil
				onChange(batch)
			}

		case _, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient; keep watching
		}
	}
}

// addRecursive adds root and every non-skipped subdirectory to the watcher.
func (w *Watcher) addRecursive(fsWatcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root {
			if strings.HasPrefix(name, ".") || w.skipDirs[name] {
				return filepath.SkipDir
			}
		}
		return fsWatcher.Add(path)
	})
}

// relevant reports whether the event should trigger a re-run.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return relevantExtensions[filepath.Ext(event.Name)]
}
