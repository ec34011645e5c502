package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/datepick/pkg/settings"
)

func TestPersistenceWatchEmitsSettingsChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Put(settings.KeyAutofocus, "true"); err != nil {
		t.Fatalf("put: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventSettingsChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for settings change event")
		}
	}
}

func TestWatchFileEmitsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("2024-01-01"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := WatchFile(ctx, path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("2024-02-02"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type != EventFileChanged {
				continue
			}
			if filepath.Base(evt.Path) != "notes.md" {
				t.Fatalf("event for %q", evt.Path)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for file change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		throttle.Enqueue(Event{Type: EventFileChanged, Path: "a"}, send)
	}
	throttle.Enqueue(Event{Type: EventSettingsChanged}, send)

	time.Sleep(100 * time.Millisecond)
	if n := len(got); n != 2 {
		t.Fatalf("sent %d events, want 2", n)
	}
	if first := <-got; first.Type != EventFileChanged {
		t.Fatalf("first event = %+v", first)
	}
}
