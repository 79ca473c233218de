// Package history records theme activations so recent choices can be
// listed and re-applied.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/unkn0wn-root/tinct/internal/errdef"
)

// ActivationSource names what triggered a theme activation.
type ActivationSource string

const (
	SourceUser    ActivationSource = "user"
	SourceSystem  ActivationSource = "system"
	SourceHistory ActivationSource = "history"
	SourceCLI     ActivationSource = "cli"
)

type Entry struct {
	ID          string
	ThemeKey    string
	DisplayName string
	Source      ActivationSource
	ActivatedAt time.Time
}

type Store struct {
	mu         sync.Mutex
	conn       *sql.DB
	maxEntries int
}

const defaultMaxEntries = 200

// Open creates or opens the activation database at path. maxEntries
// caps the number of rows kept; older rows are pruned on insert.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "create history dir")
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHistory, err, "open history db %s", path)
	}

	// WAL keeps the UI reader responsive while activations are written.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errdef.Wrap(errdef.CodeHistory, err, "configure history db")
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS activations (
		id TEXT PRIMARY KEY,
		theme_key TEXT NOT NULL,
		display_name TEXT NOT NULL,
		source TEXT NOT NULL,
		activated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS activations_at ON activations (activated_at DESC);
	`
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, errdef.Wrap(errdef.CodeHistory, err, "create history schema")
	}

	return &Store{conn: conn, maxEntries: maxEntries}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Record inserts an activation and prunes rows beyond the cap. A zero
// ActivatedAt is stamped with the current time.
func (s *Store) Record(entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return Entry{}, errdef.New(errdef.CodeHistory, "history store is closed")
	}

	if strings.TrimSpace(entry.ThemeKey) == "" {
		return Entry{}, errdef.New(errdef.CodeHistory, "activation needs a theme key")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ActivatedAt.IsZero() {
		entry.ActivatedAt = time.Now()
	}
	if entry.Source == "" {
		entry.Source = SourceUser
	}

	_, err := s.conn.Exec(
		`INSERT OR REPLACE INTO activations (id, theme_key, display_name, source, activated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.ThemeKey,
		entry.DisplayName,
		string(entry.Source),
		entry.ActivatedAt.UnixNano(),
	)
	if err != nil {
		return Entry{}, errdef.Wrap(errdef.CodeHistory, err, "record activation")
	}

	_, err = s.conn.Exec(
		`DELETE FROM activations WHERE id NOT IN (
			SELECT id FROM activations ORDER BY activated_at DESC, id DESC LIMIT ?
		)`,
		s.maxEntries,
	)
	if err != nil {
		return Entry{}, errdef.Wrap(errdef.CodeHistory, err, "prune activations")
	}
	return entry, nil
}

// Recent returns up to n activations, newest first. n <= 0 means the
// full retained window.
func (s *Store) Recent(n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil, errdef.New(errdef.CodeHistory, "history store is closed")
	}
	if n <= 0 || n > s.maxEntries {
		n = s.maxEntries
	}

	rows, err := s.conn.Query(
		`SELECT id, theme_key, display_name, source, activated_at
		 FROM activations ORDER BY activated_at DESC, id DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHistory, err, "query activations")
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var (
			entry  Entry
			source string
			at     int64
		)
		if err := rows.Scan(&entry.ID, &entry.ThemeKey, &entry.DisplayName, &source, &at); err != nil {
			return nil, errdef.Wrap(errdef.CodeHistory, err, "scan activation")
		}
		entry.Source = ActivationSource(source)
		entry.ActivatedAt = time.Unix(0, at)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errdef.Wrap(errdef.CodeHistory, err, "iterate activations")
	}
	return entries, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return errdef.New(errdef.CodeHistory, "history store is closed")
	}
	if _, err := s.conn.Exec(`DELETE FROM activations`); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "clear activations")
	}
	return nil
}
