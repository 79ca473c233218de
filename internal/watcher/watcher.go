// Package watcher notices external edits to the theme directories so
// the catalog can refresh without a restart.
package watcher

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/blake2b"
)

type EventKind int

const (
	EventAdded EventKind = iota
	EventChanged
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Fingerprint identifies file content; metadata alone is not trusted
// because editors rewrite files with unchanged sizes.
type Fingerprint struct {
	Mod  time.Time
	Size int64
	Sum  [blake2b.Size256]byte
}

type Event struct {
	Path string
	Kind EventKind
}

type Options struct {
	// Interval is the rescan fallback period for filesystems where
	// fsnotify misses events (network mounts, some editors).
	Interval time.Duration
	Buffer   int
	// Accept filters scanned file names; nil accepts everything.
	Accept func(name string) bool
}

const (
	defaultInterval = 3 * time.Second
	defaultBuffer   = 16
)

type Watcher struct {
	dirs     []string
	accept   func(string) bool
	interval time.Duration

	mu      sync.Mutex
	prints  map[string]Fingerprint
	out     chan Event
	notify  *fsnotify.Watcher
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
	closed  bool
}

func New(dirs []string, opts Options) *Watcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	cleaned := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(dir))
	}
	return &Watcher{
		dirs:     cleaned,
		accept:   opts.Accept,
		interval: interval,
		prints:   make(map[string]Fingerprint),
		out:      make(chan Event, buffer),
		stop:     make(chan struct{}),
	}
}

func (w *Watcher) Events() <-chan Event {
	return w.out
}

// Start seeds fingerprints from the current directory contents and
// begins watching. Directories that do not exist yet are rescanned by
// the ticker until they appear.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.started || w.closed {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	w.seed()

	notify, err := fsnotify.NewWatcher()
	if err == nil {
		for _, dir := range w.dirs {
			// best effort; the rescan ticker covers unwatchable dirs
			_ = notify.Add(dir)
		}
		w.mu.Lock()
		w.notify = notify
		w.mu.Unlock()
	}

	w.wg.Add(1)
	go w.run(notify)
	return err
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	started := w.started
	notify := w.notify
	w.mu.Unlock()

	if notify != nil {
		_ = notify.Close()
	}
	if started {
		close(w.stop)
		w.wg.Wait()
	}
	close(w.out)
}

func (w *Watcher) run(notify *fsnotify.Watcher) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var notifyEvents chan fsnotify.Event
	var notifyErrors chan error
	if notify != nil {
		notifyEvents = notify.Events
		notifyErrors = notify.Errors
	}

	// fsnotify fires once per write syscall; debounce into a rescan so
	// an editor save produces one event.
	var pending <-chan time.Time
	for {
		select {
		case _, ok := <-notifyEvents:
			if !ok {
				notifyEvents = nil
				continue
			}
			pending = time.After(150 * time.Millisecond)
		case _, ok := <-notifyErrors:
			if !ok {
				notifyErrors = nil
			}
		case <-pending:
			pending = nil
			w.Rescan()
		case <-ticker.C:
			w.Rescan()
		case <-w.stop:
			return
		}
	}
}

// seed records the starting state without emitting events.
func (w *Watcher) seed() {
	prints := w.scan()
	w.mu.Lock()
	w.prints = prints
	w.mu.Unlock()
}

// Rescan diffs the directories against the recorded fingerprints and
// emits one event per real difference.
func (w *Watcher) Rescan() {
	current := w.scan()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	previous := w.prints
	w.prints = current

	var events []Event
	for path, print := range current {
		prev, ok := previous[path]
		switch {
		case !ok:
			events = append(events, Event{Path: path, Kind: EventAdded})
		case prev.Sum != print.Sum:
			events = append(events, Event{Path: path, Kind: EventChanged})
		}
	}
	for path := range previous {
		if _, ok := current[path]; !ok {
			events = append(events, Event{Path: path, Kind: EventRemoved})
		}
	}
	w.mu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	for _, evt := range events {
		w.emit(evt)
	}
}

func (w *Watcher) emit(evt Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.out <- evt:
	default:
	}
}

func (w *Watcher) scan() map[string]Fingerprint {
	prints := make(map[string]Fingerprint)
	for _, dir := range w.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if w.accept != nil && !w.accept(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			print, err := fingerprint(path)
			if err != nil {
				continue
			}
			prints[path] = print
		}
	}
	return prints
}

func fingerprint(path string) (Fingerprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fingerprint{}, err
	}
	print := Fingerprint{
		Size: int64(len(data)),
		Sum:  blake2b.Sum256(data),
	}
	if info, err := os.Stat(path); err == nil {
		print.Mod = info.ModTime()
	}
	return print, nil
}
