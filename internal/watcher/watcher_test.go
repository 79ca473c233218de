package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func drain(w *Watcher) []Event {
	var events []Event
	for {
		select {
		case evt := <-w.Events():
			events = append(events, evt)
		default:
			return events
		}
	}
}

func TestRescanEmitsAddedChangedRemoved(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.toml")
	if err := os.WriteFile(keep, []byte("inherit = 'dark'\n"), 0o644); err != nil {
		t.Fatalf("write keep: %v", err)
	}

	w := New([]string{dir}, Options{})
	w.seed()

	added := filepath.Join(dir, "new.toml")
	if err := os.WriteFile(added, []byte("inherit = 'light'\n"), 0o644); err != nil {
		t.Fatalf("write new: %v", err)
	}
	w.Rescan()

	events := drain(w)
	if len(events) != 1 || events[0].Kind != EventAdded || events[0].Path != added {
		t.Fatalf("expected single added event for %s, got %v", added, events)
	}

	if err := os.WriteFile(added, []byte("inherit = 'dark'\n"), 0o644); err != nil {
		t.Fatalf("rewrite new: %v", err)
	}
	w.Rescan()
	events = drain(w)
	if len(events) != 1 || events[0].Kind != EventChanged {
		t.Fatalf("expected single changed event, got %v", events)
	}

	if err := os.Remove(keep); err != nil {
		t.Fatalf("remove keep: %v", err)
	}
	w.Rescan()
	events = drain(w)
	if len(events) != 1 || events[0].Kind != EventRemoved || events[0].Path != keep {
		t.Fatalf("expected single removed event for %s, got %v", keep, events)
	}
}

func TestRescanIgnoresTouchWithoutContentChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "same.toml")
	if err := os.WriteFile(path, []byte("inherit = 'dark'\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := New([]string{dir}, Options{})
	w.seed()

	// rewrite identical bytes; modtime changes, content does not
	if err := os.WriteFile(path, []byte("inherit = 'dark'\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	w.Rescan()
	if events := drain(w); len(events) != 0 {
		t.Fatalf("expected no events for identical content, got %v", events)
	}
}

func TestAcceptFilterSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	w := New([]string{dir}, Options{
		Accept: func(name string) bool {
			return strings.HasSuffix(name, ".toml")
		},
	})
	w.seed()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nord.toml"), []byte("inherit = 'dark'\n"), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	w.Rescan()

	events := drain(w)
	if len(events) != 1 || filepath.Base(events[0].Path) != "nord.toml" {
		t.Fatalf("expected only nord.toml event, got %v", events)
	}
}

func TestMissingDirectoryIsQuiet(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	w := New([]string{missing}, Options{})
	w.seed()
	w.Rescan()
	if events := drain(w); len(events) != 0 {
		t.Fatalf("expected no events for missing dir, got %v", events)
	}
}

func TestStopClosesEventChannel(t *testing.T) {
	w := New([]string{t.TempDir()}, Options{})
	if err := w.Start(); err != nil {
		// fsnotify may be unavailable in sandboxes; ticker still runs
		t.Logf("fsnotify unavailable: %v", err)
	}
	w.Stop()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected closed event channel after Stop")
	}
	// second Stop is a no-op
	w.Stop()
}
