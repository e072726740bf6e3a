package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded validation run.
type Run struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Path             string    `json:"path"`
	TotalOperations  int       `json:"total_operations"`
	SchemaViolations int       `json:"schema_violations"`
	MissingDeps      int       `json:"missing_deps"`
	Cycles           int       `json:"cycles"`
	Passed           bool      `json:"passed"`
	Fingerprint      string    `json:"fingerprint"`
}

// NewRunID returns a time-sortable UUIDv7 run id.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordRun inserts one run row. Duplicate ids are silently ignored so
// re-recording the same run is idempotent.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	passed := 0
	if run.Passed {
		passed = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, path, total_operations, schema_violations, missing_deps, cycles, passed, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.Path,
		run.TotalOperations,
		run.SchemaViolations,
		run.MissingDeps,
		run.Cycles,
		passed,
		run.Fingerprint,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns
// all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, path, total_operations, schema_violations, missing_deps, cycles, passed, fingerprint
		FROM runs
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var passed int
		if err := rows.Scan(
			&run.ID,
			&createdAt,
			&run.Path,
			&run.TotalOperations,
			&run.SchemaViolations,
			&run.MissingDeps,
			&run.Cycles,
			&passed,
			&run.Fingerprint,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		run.Passed = passed != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}
