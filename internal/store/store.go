// Package store keeps the history of engine runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for unknown runs.
var ErrNotFound = errors.New("run not found")

// Run is a recorded engine run.
type Run struct {
	ID       ulid.ULID
	Example  string
	Query    string
	Output   string
	Err      string
	Started  time.Time
	Duration time.Duration
}

// Failed checks if the run ended with an error.
func (r Run) Failed() bool {
	return r.Err != ""
}

// Store is a run history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at path with WAL mode enabled and creates the schema if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	example TEXT NOT NULL,
	query TEXT NOT NULL,
	output TEXT NOT NULL,
	err TEXT NOT NULL DEFAULT '',
	started_at INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_example ON runs(example);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Save inserts r, or replaces the run with the same ID.
func (s *Store) Save(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, example, query, output, err, started_at, duration_ns)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Example, r.Query, r.Output, r.Err, r.Started.UnixNano(), int64(r.Duration))
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

// List returns at most limit runs, newest first. A limit of 0 or less means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, example, query, output, err, started_at, duration_ns
FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// Get returns the run id.
func (s *Store) Get(ctx context.Context, id ulid.ULID) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, example, query, output, err, started_at, duration_ns
FROM runs
WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r                 Run
		id                string
		started, duration int64
	)
	if err := s.Scan(&id, &r.Example, &r.Query, &r.Output, &r.Err, &started, &duration); err != nil {
		return Run{}, err
	}
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return Run{}, fmt.Errorf("run id %q: %w", id, err)
	}
	r.ID = parsed
	r.Started = time.Unix(0, started)
	r.Duration = time.Duration(duration)
	return r, nil
}
