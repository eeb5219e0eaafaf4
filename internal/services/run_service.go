package services

import (
	"fmt"
	"sync"

	"github.com/adyen/ecommerce-e2e/internal/models"
)

// DefaultListLimit caps ListRuns when the caller passes no limit
const DefaultListLimit = 50

// RunRepository defines the interface for run persistence
type RunRepository interface {
	CreateRun(run *models.Run) error
	GetRun(id string) (*models.Run, error)
	UpdateRun(run *models.Run) error
	ListRuns(limit int) ([]*models.Run, error)
	CreateScenarioResult(result *models.ScenarioResult) error
	ListScenarioResults(runID string) ([]*models.ScenarioResult, error)
}

// RunService records suite runs and their journey results
type RunService interface {
	StartRun(baseURL, driver, browser string) (*models.Run, error)
	RecordScenario(result *models.ScenarioResult) error
	FinishRun(runID string) (*models.Run, error)
	AbortRun(runID string) (*models.Run, error)
	GetRun(runID string) (*models.Run, error)
	ListRuns(limit int) ([]*models.Run, error)
	ListScenarios(runID string) ([]*models.ScenarioResult, error)
}

// RunServiceImpl implements RunService. Journeys finishing concurrently
// record through the same service, so read-modify-write of a run is
// serialised.
type RunServiceImpl struct {
	mu      sync.Mutex
	runRepo RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository) RunService {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// StartRun creates and persists a running run
func (s *RunServiceImpl) StartRun(baseURL, driver, browser string) (*models.Run, error) {
	run, err := models.NewRun(baseURL, driver, browser)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// RecordScenario stores result and counts it into its run
func (s *RunServiceImpl) RecordScenario(result *models.ScenarioResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runRepo.GetRun(result.RunID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	// Use domain methods to update counters
	if err := run.Record(result); err != nil {
		return err
	}

	if err := s.runRepo.CreateScenarioResult(result); err != nil {
		return fmt.Errorf("failed to record scenario: %w", err)
	}
	if err := s.runRepo.UpdateRun(run); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// FinishRun closes a run with its verdict
func (s *RunServiceImpl) FinishRun(runID string) (*models.Run, error) {
	return s.transition(runID, (*models.Run).Finish)
}

// AbortRun closes a run without a verdict
func (s *RunServiceImpl) AbortRun(runID string) (*models.Run, error) {
	return s.transition(runID, (*models.Run).Abort)
}

func (s *RunServiceImpl) transition(runID string, apply func(*models.Run) error) (*models.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := apply(run); err != nil {
		return nil, err
	}

	if err := s.runRepo.UpdateRun(run); err != nil {
		return nil, fmt.Errorf("failed to update run: %w", err)
	}

	return run, nil
}

// GetRun retrieves a run by ID
func (s *RunServiceImpl) GetRun(runID string) (*models.Run, error) {
	run, err := s.runRepo.GetRun(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs
func (s *RunServiceImpl) ListRuns(limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	runs, err := s.runRepo.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ListScenarios returns the results recorded for a run
func (s *RunServiceImpl) ListScenarios(runID string) ([]*models.ScenarioResult, error) {
	if _, err := s.runRepo.GetRun(runID); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	results, err := s.runRepo.ListScenarioResults(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return results, nil
}
