package plugin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"autowrap/host"
)

func TestWatcherReportsChangedBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w, err := WatchFiles(map[string]host.BufferID{path: 7})
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("hello again\n"), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case id := <-w.Changes():
		if id != 7 {
			t.Fatalf("expected buffer 7, got %d", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}
}

func TestWatcherCloseEndsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w, err := WatchFiles(map[string]host.BufferID{path: 1})
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Fatalf("expected closed changes channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for channel close")
	}
}
