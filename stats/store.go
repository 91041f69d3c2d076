// Package stats keeps finished runs in a local SQLite database.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeDied Outcome = "died"
	OutcomeQuit Outcome = "quit"
)

var ErrUnknownOutcome = errors.New("stats: unknown outcome")

// Run is one attempt at a level, from load to win, death or quit.
type Run struct {
	ID          int64
	Session     uuid.UUID
	Level       string
	Fingerprint uint64
	Outcome     Outcome
	Ticks       int
	Rotations   int
	CreatedAt   time.Time
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path. A leading ~ is expanded.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("stats: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("stats: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			level TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			rotations INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level, outcome, ticks);
	`)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a run and returns its row id.
func (s *Store) Record(r Run) (int64, error) {
	switch r.Outcome {
	case OutcomeWon, OutcomeDied, OutcomeQuit:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOutcome, r.Outcome)
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (session, level, fingerprint, outcome, ticks, rotations)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Session.String(), r.Level, fingerprintText(r.Fingerprint), string(r.Outcome), r.Ticks, r.Rotations,
	)
	if err != nil {
		return 0, fmt.Errorf("stats: cannot record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("stats: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Best returns the fastest wins for a level, fewest ticks first. Runs made
// against a different revision of the level file are excluded when
// fingerprint is non-zero.
func (s *Store) Best(level string, fingerprint uint64, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, session, level, fingerprint, outcome, ticks, rotations, created_at
		 FROM runs
		 WHERE level = ? AND outcome = ?`
	args := []any{level, string(OutcomeWon)}
	if fingerprint != 0 {
		query += " AND fingerprint = ?"
		args = append(args, fingerprintText(fingerprint))
	}
	query += " ORDER BY ticks ASC, rotations ASC, id ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Deaths counts recorded deaths on a level across all sessions.
func (s *Store) Deaths(level string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM runs WHERE level = ? AND outcome = ?",
		level, string(OutcomeDied),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("stats: cannot count deaths: %w", err)
	}
	return n, nil
}

// Session returns every run recorded under one session, oldest first.
func (s *Store) Session(id uuid.UUID) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, session, level, fingerprint, outcome, ticks, rotations, created_at
		 FROM runs WHERE session = ? ORDER BY id ASC`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot query session: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			r           Run
			session     string
			fingerprint string
			outcome     string
			createdAt   any
		)
		if err := rows.Scan(&r.ID, &session, &r.Level, &fingerprint, &outcome, &r.Ticks, &r.Rotations, &createdAt); err != nil {
			return nil, fmt.Errorf("stats: cannot scan row: %w", err)
		}
		r.Session, _ = uuid.Parse(session)
		fmt.Sscanf(fingerprint, "%x", &r.Fingerprint)
		r.Outcome = Outcome(outcome)
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: row iteration error: %w", err)
	}
	return runs, nil
}

// fingerprints are stored as hex text; SQLite integers are signed.
func fingerprintText(f uint64) string {
	return fmt.Sprintf("%016x", f)
}
