package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports changed source files", func(t *testing.T) {
		tmpDir := t.TempDir()

		watcher := NewWatcher([]string{tmpDir}, []string{"node_modules"})
		watcher.SetDebounce(50 * time.Millisecond)

		changes := make(chan []string, 1)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- watcher.Watch(ctx, func(paths []string) {
				select {
				case changes <- paths:
				default:
				}
			})
		}()

		// Give the watcher time to install before writing
		time.Sleep(200 * time.Millisecond)
		target := filepath.Join(tmpDir, "auth.test.ts")
		if err := os.WriteFile(target, []byte(`it("works", () => {})`), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		select {
		case paths := <-changes:
			if len(paths) == 0 {
				t.Error("expected at least one changed path")
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for change notification")
		}

		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context error, got %v", err)
		}
	})

	t.Run("ignores irrelevant file types", func(t *testing.T) {
		tmpDir := t.TempDir()

		watcher := NewWatcher([]string{tmpDir}, nil)
		watcher.SetDebounce(50 * time.Millisecond)

		changes := make(chan []string, 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go watcher.Watch(ctx, func(paths []string) {
			select {
			case changes <- paths:
			default:
			}
		})

		time.Sleep(200 * time.Millisecond)
		if err := os.WriteFile(filepath.Join(tmpDir, "notes.md"), []byte("notes"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		select {
		case paths := <-changes:
			t.Errorf("expected no notification for .md file, got %v", paths)
		case <-time.After(500 * time.Millisecond):
		}
	})

	t.Run("cancellation before any change returns cleanly", func(t *testing.T) {
		tmpDir := t.TempDir()
		watcher := NewWatcher([]string{tmpDir}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- watcher.Watch(ctx, func(paths []string) {
				t.Error("no change expected")
			})
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop on cancellation")
		}
	})

	t.Run("missing root is an error", func(t *testing.T) {
		watcher := NewWatcher([]string{"/no/such/dir"}, nil)
		err := watcher.Watch(context.Background(), func(paths []string) {})
		if err == nil {
			t.Error("expected error for missing root")
		}
	})
}
