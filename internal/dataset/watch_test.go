package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "news.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	changed := make(chan struct{}, 4)
	w, err := NewWatcher(path, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	for range 3 {
		if err := os.WriteFile(path, []byte("{\"agency\":\"a\"}\n"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}

	select {
	case <-changed:
		t.Error("expected writes to be debounced into one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "news.jsonl")

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(path, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case <-changed:
		t.Error("unexpected notification for another file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "news.jsonl"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "news.jsonl"), nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
