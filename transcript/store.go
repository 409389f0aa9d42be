// Package transcript journals a play session to a SQLite database: every
// input line and every flushed output chunk, in order. The store is purely
// observational; the interpreter never reads it back.
package transcript

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store records transcript rows for one session.
type Store struct {
	db      *sql.DB
	session string
	seq     int64
	mu      sync.Mutex
}

// Open opens (creating if needed) the transcript database and starts a new
// session.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS transcript (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session     TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		direction   TEXT NOT NULL,
		text        TEXT NOT NULL,
		recorded_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transcript table: %w", err)
	}

	return &Store{
		db:      db,
		session: uuid.NewString(),
	}, nil
}

// Session returns the session identifier rows are stamped with.
func (s *Store) Session() string {
	return s.session
}

// Record appends one row. direction is "in" for player input and "out" for
// game output.
func (s *Store) Record(direction, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	_, err := s.db.Exec(
		"INSERT INTO transcript (session, seq, direction, text) VALUES (?, ?, ?, ?)",
		s.session, s.seq, direction, text,
	)
	if err != nil {
		return fmt.Errorf("recording transcript row: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
