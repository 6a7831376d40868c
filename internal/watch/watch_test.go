package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

// startWatch runs Run in the background and returns a channel fed on
// every change notification.
func startWatch(t *testing.T, dir string) <-chan struct{} {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, dir, 50*time.Millisecond, func() { changes <- struct{}{} })
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("Run did not stop after cancel")
		}
	})
	// Give the watcher time to register before the test writes.
	time.Sleep(100 * time.Millisecond)
	return changes
}

func waitChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRunReportsWrites(t *testing.T) {
	dir := t.TempDir()
	changes := startWatch(t, dir)

	// A burst of writes collapses into one notification.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	waitChange(t, changes)

	select {
	case <-changes:
		t.Error("burst should produce a single notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRunWatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	changes := startWatch(t, dir)

	sub := filepath.Join(dir, "posts")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)

	if err := os.WriteFile(filepath.Join(sub, "new.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitChange(t, changes)
}

func TestRunMissingDirectory(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "absent"), 0, func() {})
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "posts/a.md", Op: fsnotify.Write}, true},
		{"remove", fsnotify.Event{Name: "posts/a.md", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "posts/a.md", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "posts/.a.md", Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: "posts/a.md~", Op: fsnotify.Write}, false},
		{"swap file", fsnotify.Event{Name: "posts/a.md.swp", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.event); got != tt.want {
				t.Errorf("relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}
