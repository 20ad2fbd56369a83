package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"soldocs/internal/validator"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ RunStore = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT,
			started_at TEXT,
			duration TEXT,
			files INTEGER,
			passed INTEGER,
			failed INTEGER,
			warnings INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS file_results (
			run_id INTEGER REFERENCES runs(id) ON DELETE CASCADE,
			path TEXT,
			dialect TEXT,
			ok INTEGER,
			sections JSON,
			issues JSON,
			PRIMARY KEY (run_id, path)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_file_results_ok ON file_results(run_id, ok);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r *validator.Report) (int64, error) {
	if r == nil {
		return 0, fmt.Errorf("report is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (root, started_at, duration, files, passed, failed, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Root, r.StartedAt.UTC().Format(time.RFC3339Nano), r.Duration,
		r.Summary.Files, r.Summary.Passed, r.Summary.Failed, r.Summary.Warnings)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_results (run_id, path, dialect, ok, sections, issues)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, path) DO UPDATE SET
			dialect=excluded.dialect,
			ok=excluded.ok,
			sections=excluded.sections,
			issues=excluded.issues
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, f := range r.Files {
		sections, _ := json.Marshal(f.Sections)
		issues, _ := json.Marshal(f.Issues)
		if _, err := stmt.ExecContext(ctx, runID, f.Path, f.Dialect, f.OK(), sections, issues); err != nil {
			return 0, fmt.Errorf("failed to save result for %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, root, started_at, duration, files, passed, failed, warnings
		FROM runs ORDER BY id DESC LIMIT 1
	`)

	var run Run
	var startedAt string
	err := row.Scan(&run.ID, &run.Root, &startedAt, &run.Duration,
		&run.Summary.Files, &run.Summary.Passed, &run.Summary.Failed, &run.Summary.Warnings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	return &run, nil
}

func (s *SQLiteStore) FailingFiles(ctx context.Context, runID int64) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, dialect, ok, sections, issues
		FROM file_results WHERE run_id = ? AND ok = 0 ORDER BY path
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query file results: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		var sections, issues []byte
		if err := rows.Scan(&rec.Path, &rec.Dialect, &rec.OK, &sections, &issues); err != nil {
			return nil, fmt.Errorf("failed to scan file result: %w", err)
		}
		if len(sections) > 0 {
			_ = json.Unmarshal(sections, &rec.Sections)
		}
		if len(issues) > 0 {
			_ = json.Unmarshal(issues, &rec.Issues)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
