package storage

import (
	"context"
	"errors"
	"time"

	"soldocs/internal/validator"
)

// ErrNoRuns is returned when the store holds no validation run yet.
var ErrNoRuns = errors.New("no validation runs recorded")

// RunStore persists validation runs so coverage can be tracked over time.
type RunStore interface {
	// SaveRun stores a report and returns the new run ID.
	SaveRun(ctx context.Context, r *validator.Report) (int64, error)

	// LatestRun returns the most recent run.
	LatestRun(ctx context.Context) (*Run, error)

	// FailingFiles returns the files of a run that had error-level issues.
	FailingFiles(ctx context.Context, runID int64) ([]FileRecord, error)

	Close() error
}

// Run is a stored validation run summary.
type Run struct {
	ID        int64
	Root      string
	StartedAt time.Time
	Duration  string
	Summary   validator.Summary
}

// FileRecord is a stored per-file validation result.
type FileRecord struct {
	Path     string
	Dialect  string
	OK       bool
	Sections []string
	Issues   []validator.Issue
}
