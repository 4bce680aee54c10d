package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned by GetRun for unknown run IDs.
var ErrRunNotFound = errors.New("db: run not found")

// Run matches the recon_runs table structure: one row per completed
// reconstruction.
type Run struct {
	RunID            string  // assigned on insert if empty
	CreatedUnixNanos int64   // matches created_unix_nanos INTEGER NOT NULL
	Source           string  // input description (file path, dataset name, "upload")
	Width            int     // matches width INTEGER NOT NULL
	Height           int     // matches height INTEGER NOT NULL
	Bandwidth        float64 // kernel bandwidth used
	MinDensity       float64 // global field minimum after reduction
	MaxDensity       float64 // global field maximum after reduction
	DurationMillis   int64   // wall time of the reconstruction
}

// InsertRun records a completed reconstruction. Assigns RunID and
// CreatedUnixNanos when unset.
func (db *DB) InsertRun(r *Run) error {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedUnixNanos == 0 {
		r.CreatedUnixNanos = time.Now().UnixNano()
	}

	_, err := db.Exec(`
		INSERT INTO recon_runs
			(run_id, created_unix_nanos, source, width, height,
			 bandwidth, min_density, max_density, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedUnixNanos, r.Source, r.Width, r.Height,
		r.Bandwidth, r.MinDensity, r.MaxDensity, r.DurationMillis)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun loads one run by ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_unix_nanos, source, width, height,
		       bandwidth, min_density, max_density, duration_ms
		FROM recon_runs WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(&r.RunID, &r.CreatedUnixNanos, &r.Source, &r.Width, &r.Height,
		&r.Bandwidth, &r.MinDensity, &r.MaxDensity, &r.DurationMillis)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT run_id, created_unix_nanos, source, width, height,
		       bandwidth, min_density, max_density, duration_ms
		FROM recon_runs ORDER BY created_unix_nanos DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedUnixNanos, &r.Source, &r.Width, &r.Height,
			&r.Bandwidth, &r.MinDensity, &r.MaxDensity, &r.DurationMillis); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
