package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdhollis/logtally/models"
)

// Run is one persisted count run.
type Run struct {
	RunID      int64  `yaml:"run_id"`
	CreatedAt  string `yaml:"created_at"`
	Input      string `yaml:"input"`
	Field      string `yaml:"field,omitempty"`
	Extractor  string `yaml:"extractor"`
	Policy     string `yaml:"policy"`
	Workers    int    `yaml:"workers"`
	Processed  int    `yaml:"processed"`
	Malformed  int    `yaml:"malformed"`
	Distinct   int    `yaml:"distinct"`
	DurationMS int64  `yaml:"duration_ms"`
}

// InsertRun stores a run and its top keys in one transaction and returns the
// new run ID.
func (db *DB) InsertRun(run Run, top []models.KeyCount) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO runs (input, field, extractor, policy, workers, processed, malformed, distinct_keys, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Input, run.Field, run.Extractor, run.Policy, run.Workers, run.Processed, run.Malformed, run.Distinct, run.DurationMS)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for i, kc := range top {
		if _, err := tx.Exec(`
			INSERT INTO run_keys (run_id, rank, key, count)
			VALUES (?, ?, ?, ?)
		`, runID, i+1, kc.Key, kc.Count); err != nil {
			return 0, fmt.Errorf("failed to insert run key: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, input, field, extractor, policy, workers, processed, malformed, distinct_keys, duration_ms
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Input, &r.Field, &r.Extractor, &r.Policy,
			&r.Workers, &r.Processed, &r.Malformed, &r.Distinct, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRun fetches one run by ID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, input, field, extractor, policy, workers, processed, malformed, distinct_keys, duration_ms
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.Input, &r.Field, &r.Extractor, &r.Policy,
		&r.Workers, &r.Processed, &r.Malformed, &r.Distinct, &r.DurationMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &r, nil
}

// GetRunKeys returns a run's stored top keys in rank order.
func (db *DB) GetRunKeys(runID int64) ([]models.KeyCount, error) {
	rows, err := db.Query(`
		SELECT key, count FROM run_keys
		WHERE run_id = ?
		ORDER BY rank
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run keys: %w", err)
	}
	defer rows.Close()

	var keys []models.KeyCount
	for rows.Next() {
		var kc models.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan run key: %w", err)
		}
		keys = append(keys, kc)
	}

	return keys, rows.Err()
}
