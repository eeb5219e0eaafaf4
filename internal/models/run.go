package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
	RunStatusAborted RunStatus = "aborted"
)

// Run is one invocation of the suite against a storefront
type Run struct {
	ID         string    `json:"id"`
	BaseURL    string    `json:"baseUrl"`
	Driver     string    `json:"driver"`
	Browser    string    `json:"browser"`
	Status     RunStatus `json:"status"`
	Total      int       `json:"total"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt,omitzero"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Domain errors
var (
	ErrInvalidBaseURL          = errors.New("base URL cannot be empty")
	ErrInvalidDriver           = errors.New("driver cannot be empty")
	ErrInvalidScenarioName     = errors.New("scenario name cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrRunNotFound             = errors.New("run not found")
	ErrRunMismatch             = errors.New("scenario result belongs to another run")
)

// NewRun creates a running run with validation
func NewRun(baseURL, driver, browser string) (*Run, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}
	if driver == "" {
		return nil, ErrInvalidDriver
	}

	now := time.Now()
	return &Run{
		ID:        uuid.New().String(),
		BaseURL:   baseURL,
		Driver:    driver,
		Browser:   browser,
		Status:    RunStatusRunning,
		StartedAt: now,
		UpdatedAt: now,
	}, nil
}

// Record counts a finished scenario into the run
func (r *Run) Record(result *ScenarioResult) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot record into a run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if result.RunID != r.ID {
		return ErrRunMismatch
	}

	r.Total++
	if result.Status == ScenarioStatusPassed {
		r.Passed++
	} else {
		r.Failed++
	}
	r.UpdatedAt = time.Now()
	return nil
}

// Finish closes the run as passed when no scenario failed, failed otherwise
func (r *Run) Finish() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot finish a run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	if r.Failed > 0 {
		r.Status = RunStatusFailed
	}
	r.close()
	return nil
}

// Abort closes the run without a verdict, e.g. on interrupt
func (r *Run) Abort() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot abort a run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusAborted
	r.close()
	return nil
}

func (r *Run) close() {
	now := time.Now()
	r.FinishedAt = now
	r.UpdatedAt = now
}

// IsRunning returns true while scenarios may still be recorded
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// IsPassed returns true if the run finished without failures
func (r *Run) IsPassed() bool {
	return r.Status == RunStatusPassed
}

// Duration returns the wall time of a finished run, or the time elapsed so far
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
