// Package appstate holds the appearance state shared between the UI,
// the system scheme monitor, and the theme watcher. Subscribers are
// notified after every accepted change and can detach at any time via
// the handle returned from Subscribe.
package appstate

import "sync"

type Field int

const (
	FieldTheme Field = iota
	FieldSystemSync
	FieldImportDialog
)

func (f Field) String() string {
	switch f {
	case FieldTheme:
		return "theme"
	case FieldSystemSync:
		return "system-sync"
	case FieldImportDialog:
		return "import-dialog"
	default:
		return "unknown"
	}
}

type Snapshot struct {
	ThemeKey            string
	UseSystemTheme      bool
	ImportDialogVisible bool
}

type Change struct {
	Field    Field
	Snapshot Snapshot
}

type Store struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	listeners map[int]func(Change)
	nextID    int
}

func NewStore(initial Snapshot) *Store {
	return &Store{
		snapshot:  initial,
		listeners: make(map[int]func(Change)),
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Subscribe registers fn for change notifications. The returned func
// detaches it; calling it more than once is harmless. Changes already
// in flight when unsubscribing may still be delivered.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) SetTheme(key string) {
	s.update(FieldTheme, func(snap *Snapshot) bool {
		if snap.ThemeKey == key {
			return false
		}
		snap.ThemeKey = key
		return true
	})
}

func (s *Store) SetSystemSync(enabled bool) {
	s.update(FieldSystemSync, func(snap *Snapshot) bool {
		if snap.UseSystemTheme == enabled {
			return false
		}
		snap.UseSystemTheme = enabled
		return true
	})
}

func (s *Store) SetImportDialogVisible(visible bool) {
	s.update(FieldImportDialog, func(snap *Snapshot) bool {
		if snap.ImportDialogVisible == visible {
			return false
		}
		snap.ImportDialogVisible = visible
		return true
	})
}

// update applies mutate under the lock and notifies outside it so a
// listener may call back into the store without deadlocking.
func (s *Store) update(field Field, mutate func(*Snapshot) bool) {
	s.mu.Lock()
	if !mutate(&s.snapshot) {
		s.mu.Unlock()
		return
	}
	change := Change{Field: field, Snapshot: s.snapshot}
	targets := make([]func(Change), 0, len(s.listeners))
	for _, fn := range s.listeners {
		targets = append(targets, fn)
	}
	s.mu.Unlock()

	for _, fn := range targets {
		fn(change)
	}
}
