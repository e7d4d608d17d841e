// Package history keeps a journal of export runs in a local SQLite
// database. It stores run summaries only, never note content: file identity
// in the exporter stays filename-based.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one export invocation's summary.
type Run struct {
	ID         string
	Root       string // root document path
	Depth      string // "unbounded" or the numeric budget
	HTML       bool
	Expected   int // dry-run count
	Copied     int // final registry size
	Duration   time.Duration
	StartedAt  time.Time
}

// Store persists export runs.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) the journal database.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		depth TEXT NOT NULL,
		html INTEGER NOT NULL,
		expected INTEGER NOT NULL,
		copied INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		started_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one finished run and returns its generated id.
func (s *Store) Append(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, depth, html, expected, copied, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Depth, boolToInt(run.HTML),
		run.Expected, run.Copied, run.Duration.Milliseconds(), run.StartedAt.Unix())
	if err != nil {
		return "", fmt.Errorf("append run: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, depth, html, expected, copied, duration_ms, started_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var htmlInt int
		var durationMS, startedUnix int64
		if err := rows.Scan(&r.ID, &r.Root, &r.Depth, &htmlInt, &r.Expected, &r.Copied, &durationMS, &startedUnix); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.HTML = htmlInt != 0
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.StartedAt = time.Unix(startedUnix, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
