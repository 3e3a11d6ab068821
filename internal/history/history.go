// Package history persists the interactive command history in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	line       TEXT NOT NULL,
	exit_code  INTEGER NOT NULL DEFAULT 0,
	entered_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_entered_at ON history(entered_at);
`

// Entry is one recorded command line.
type Entry struct {
	ID       int64
	Line     string
	ExitCode int
	At       time.Time
}

// Store wraps a SQLite database holding the command history.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the history database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("history: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping database: %w", err)
	}

	setDBPermissions(path)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records an executed line with its exit code. Blank lines are
// not recorded.
func (s *Store) Append(line string, exitCode int) error {
	if line == "" {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO history (line, exit_code, entered_at) VALUES (?, ?, ?)`,
		line, exitCode, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, line, exit_code, entered_at
		 FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.Line, &e.ExitCode, &at); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// setDBPermissions sets restrictive file permissions on the database
// and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}
