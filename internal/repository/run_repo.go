package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/adyen/ecommerce-e2e/internal/database"
	"github.com/adyen/ecommerce-e2e/internal/models"
)

// RunRepository stores runs and scenario results in PostgreSQL
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, base_url, driver, browser, status, total, passed, failed, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.BaseURL,
		run.Driver,
		run.Browser,
		run.Status,
		run.Total,
		run.Passed,
		run.Failed,
		run.StartedAt,
		run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, base_url, driver, browser, status, total, passed, failed,
		       started_at, finished_at, updated_at
		FROM runs
		WHERE id = $1
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// UpdateRun writes the status, counters and timestamps of run
func (r *RunRepository) UpdateRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, total = $2, passed = $3, failed = $4, finished_at = $5, updated_at = $6
		WHERE id = $7
	`

	finished := pq.NullTime{Time: run.FinishedAt, Valid: !run.FinishedAt.IsZero()}
	result, err := r.db.Exec(query, run.Status, run.Total, run.Passed, run.Failed, finished, time.Now(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrRunNotFound, run.ID)
	}

	return nil
}

// ListRuns returns up to limit runs, newest first
func (r *RunRepository) ListRuns(limit int) ([]*models.Run, error) {
	query := `
		SELECT id, base_url, driver, browser, status, total, passed, failed,
		       started_at, finished_at, updated_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// CreateScenarioResult inserts one journey result
func (r *RunRepository) CreateScenarioResult(result *models.ScenarioResult) error {
	query := `
		INSERT INTO scenario_results (id, run_id, name, tags, status, failure_kind, message,
		                              screenshot, diagnostics, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(query,
		result.ID,
		result.RunID,
		result.Name,
		pq.Array(nonNil(result.Tags)),
		result.Status,
		result.FailureKind,
		result.Message,
		result.Screenshot,
		pq.Array(nonNil(result.Diagnostics)),
		result.StartedAt,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario result: %w", err)
	}

	return nil
}

// ListScenarioResults returns the results of a run in start order
func (r *RunRepository) ListScenarioResults(runID string) ([]*models.ScenarioResult, error) {
	query := `
		SELECT id, run_id, name, tags, status, failure_kind, message, screenshot,
		       diagnostics, started_at, duration_ms
		FROM scenario_results
		WHERE run_id = $1
		ORDER BY started_at, name
	`

	rows, err := r.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario results: %w", err)
	}
	defer rows.Close()

	results := []*models.ScenarioResult{}
	for rows.Next() {
		result := &models.ScenarioResult{}
		var durationMs int64
		err := rows.Scan(
			&result.ID,
			&result.RunID,
			&result.Name,
			pq.Array(&result.Tags),
			&result.Status,
			&result.FailureKind,
			&result.Message,
			&result.Screenshot,
			pq.Array(&result.Diagnostics),
			&result.StartedAt,
			&durationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario result: %w", err)
		}
		result.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scenario results: %w", err)
	}

	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	run := &models.Run{}
	var finished pq.NullTime
	err := row.Scan(
		&run.ID,
		&run.BaseURL,
		&run.Driver,
		&run.Browser,
		&run.Status,
		&run.Total,
		&run.Passed,
		&run.Failed,
		&run.StartedAt,
		&finished,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return run, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
