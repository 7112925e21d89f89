package search

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherMarksChanges(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Bool
	watcher, err := NewWatcher(dir, func() { fired.Store(true) })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	watcher.SetDebounce(10 * time.Millisecond)

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	path := filepath.Join(dir, "2024-01-01.json")
	if err := os.WriteFile(path, []byte(`{"text":"hi"}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fired.Load() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Expected onChange to fire after a write in the watched directory")
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	watcher, err := NewWatcher(t.TempDir(), func() {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := watcher.Stop(); err != nil {
		t.Errorf("First Stop failed: %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Errorf("Second Stop failed: %v", err)
	}
}
