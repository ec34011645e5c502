package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventSettingsChanged indicates stored settings were written or erased,
	// possibly by another process.
	EventSettingsChanged EventType = iota

	// EventFileChanged indicates a watched document was written or replaced.
	EventFileChanged

	// EventFileRemoved indicates a watched document disappeared.
	EventFileRemoved
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings"
	case EventFileChanged:
		return "changed"
	case EventFileRemoved:
		return "removed"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by the watchers when underlying storage changes.
type Event struct {
	Type EventType
	Path string
}

// throttleDelay is how long bursts of filesystem activity are coalesced.
var throttleDelay = 100 * time.Millisecond

// Watch streams settings change events until ctx is cancelled. Callers should
// drain the returned channel to avoid blocking the watcher.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	dirs, err := collectDirs(p.basePath)
	if err != nil {
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	return watch(ctx, dirs, true, func(evt fsnotify.Event) (Event, bool) {
		return Event{Type: EventSettingsChanged}, true
	})
}

// WatchFile streams change events for one file until ctx is cancelled. The
// directory is watched rather than the file so that editors that save by
// renaming a temporary file are still seen.
func WatchFile(ctx context.Context, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	return watch(ctx, []string{filepath.Dir(abs)}, false, func(evt fsnotify.Event) (Event, bool) {
		if filepath.Clean(evt.Name) != abs {
			return Event{}, false
		}
		if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
				return Event{Type: EventFileRemoved, Path: abs}, true
			}
		}
		if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
			return Event{Type: EventFileChanged, Path: abs}, true
		}
		return Event{}, false
	})
}

// watch watches dirs, and directories created under them when recursive is
// set, passing every filesystem event through classify.
func watch(ctx context.Context, dirs []string, recursive bool, classify func(fsnotify.Event) (Event, bool)) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next burst
				// carries the same information.
			}
		}

		throttle := newEventThrottle(throttleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if recursive && evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						continue
					}
				}

				if ev, ok := classify(evt); ok {
					throttle.Enqueue(ev, send)
				}
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid change notifications so the editor reloads
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	order   []Event
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, ok := t.pending[ev]; !ok {
		t.pending[ev] = struct{}{}
		t.order = append(t.order, ev)
	}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends while holding the lock so that nothing is sent after Stop.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	order := t.order
	t.pending = make(map[Event]struct{})
	t.order = nil
	t.timer = nil
	if t.stopped {
		return
	}
	for _, ev := range order {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
