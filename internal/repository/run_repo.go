package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kpi5/theinternet-e2e/internal/models"
)

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// RunRepository stores suite runs and their scenario results
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a repository on db
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, base_url, status, passed, failed, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.BaseURL,
		run.Status,
		run.Passed,
		run.Failed,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// RecordResult inserts one scenario result for its run
func (r *RunRepository) RecordResult(result *models.ScenarioResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO scenario_results (id, run_id, scenario, session_id, status, failures, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	failures := result.Failures
	if failures == nil {
		failures = []string{}
	}
	_, err := r.db.Exec(query,
		result.ID,
		result.RunID,
		result.Scenario,
		result.SessionID,
		result.Status,
		pq.Array(failures),
		result.StartedAt,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record result for %s: %w", result.Scenario, err)
	}
	return nil
}

// FinishRun stores the run's final status and tallies
func (r *RunRepository) FinishRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, passed = $2, failed = $3, finished_at = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(query, run.Status, run.Passed, run.Failed, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}
	return nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, base_url, status, passed, failed, started_at, finished_at
		FROM runs
		WHERE id = $1
	`

	run := &models.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.BaseURL,
		&run.Status,
		&run.Passed,
		&run.Failed,
		&run.StartedAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return run, nil
}

// ListResults returns a run's scenario results in the order they started
func (r *RunRepository) ListResults(runID string) ([]*models.ScenarioResult, error) {
	query := `
		SELECT id, run_id, scenario, session_id, status, failures, started_at, duration_ms
		FROM scenario_results
		WHERE run_id = $1
		ORDER BY started_at, scenario
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []*models.ScenarioResult
	for rows.Next() {
		res := &models.ScenarioResult{}
		var durationMS int64
		var failures pq.StringArray
		if err := rows.Scan(
			&res.ID,
			&res.RunID,
			&res.Scenario,
			&res.SessionID,
			&res.Status,
			&failures,
			&res.StartedAt,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		res.Failures = []string(failures)
		res.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// RunRecorder writes each scenario result of one run as it completes
type RunRecorder struct {
	repo *RunRepository
	run  *models.Run
}

// Recorder creates the run row and returns a recorder bound to it
func (r *RunRepository) Recorder(run *models.Run) (*RunRecorder, error) {
	if err := r.CreateRun(run); err != nil {
		return nil, err
	}
	return &RunRecorder{repo: r, run: run}, nil
}

// Record stores result under the run and updates the run's tallies
func (rr *RunRecorder) Record(result *models.ScenarioResult) error {
	result.RunID = rr.run.ID
	if err := rr.run.Count(result); err != nil {
		return err
	}
	return rr.repo.RecordResult(result)
}

// Close finishes the run and stores its final status
func (rr *RunRecorder) Close() error {
	if err := rr.run.Finish(); err != nil {
		return err
	}
	return rr.repo.FinishRun(rr.run)
}

// Run returns the run being recorded
func (rr *RunRecorder) Run() *models.Run {
	return rr.run
}
