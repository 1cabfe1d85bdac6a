// Package history keeps a small SQLite-backed record of recently
// opened map files so the picker can offer them first. Only paths and
// timestamps are stored; view state never persists.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path       TEXT PRIMARY KEY,
	opened_at  INTEGER NOT NULL,
	open_count INTEGER NOT NULL DEFAULT 1
);
`

// Entry is one recently opened file.
type Entry struct {
	Path      string
	OpenedAt  time.Time
	OpenCount int
}

// Store records recently opened files.
type Store struct {
	conn *sql.DB
}

// DefaultPath returns the standard location of the history database,
// creating its parent directory if needed.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "mindweave")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating state directory: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying history schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Touch records that path was opened now, creating or refreshing its
// entry. Paths are stored in absolute form so the same file opened
// from different directories collapses to one entry.
func (s *Store) Touch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO recent_files (path, opened_at, open_count)
		VALUES (?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET
			opened_at = excluded.opened_at,
			open_count = open_count + 1
	`, abs, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("recording open: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recently opened first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.conn.Query(`
		SELECT path, opened_at, open_count
		FROM recent_files
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var openedMs int64
		if err := rows.Scan(&e.Path, &openedMs, &e.OpenCount); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.OpenedAt = time.UnixMilli(openedMs)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Forget removes entries whose files no longer exist and returns how
// many were dropped.
func (s *Store) Forget() (int, error) {
	entries, err := s.Recent(1000)
	if err != nil {
		return 0, err
	}
	dropped := 0
	for _, e := range entries {
		if _, statErr := os.Stat(e.Path); statErr == nil {
			continue
		}
		if _, err := s.conn.Exec(`DELETE FROM recent_files WHERE path = ?`, e.Path); err != nil {
			return dropped, fmt.Errorf("removing stale entry: %w", err)
		}
		dropped++
	}
	return dropped, nil
}
