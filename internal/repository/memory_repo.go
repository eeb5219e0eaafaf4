package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/adyen/ecommerce-e2e/internal/models"
)

// MemoryRunRepository keeps runs in process memory. Used when no database
// is configured; everything is lost on exit.
type MemoryRunRepository struct {
	mu      sync.RWMutex
	runs    map[string]models.Run
	results map[string][]models.ScenarioResult
}

// NewMemoryRunRepository creates an empty in-memory repository
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{
		runs:    make(map[string]models.Run),
		results: make(map[string][]models.ScenarioResult),
	}
}

// CreateRun stores a copy of run
func (r *MemoryRunRepository) CreateRun(run *models.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID]; ok {
		return fmt.Errorf("failed to create run: duplicate id %s", run.ID)
	}
	r.runs[run.ID] = *run
	return nil
}

// GetRun returns a copy of the stored run
func (r *MemoryRunRepository) GetRun(id string) (*models.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrRunNotFound, id)
	}
	return &run, nil
}

// UpdateRun replaces the stored run
func (r *MemoryRunRepository) UpdateRun(run *models.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrRunNotFound, run.ID)
	}
	r.runs[run.ID] = *run
	return nil
}

// ListRuns returns up to limit runs, newest first
func (r *MemoryRunRepository) ListRuns(limit int) ([]*models.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*models.Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, &run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// CreateScenarioResult stores a copy of result under its run
func (r *MemoryRunRepository) CreateScenarioResult(result *models.ScenarioResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[result.RunID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrRunNotFound, result.RunID)
	}
	stored := *result
	stored.Tags = append([]string(nil), result.Tags...)
	stored.Diagnostics = append([]string{}, result.Diagnostics...)
	r.results[result.RunID] = append(r.results[result.RunID], stored)
	return nil
}

// ListScenarioResults returns the results of a run in start order
func (r *MemoryRunRepository) ListScenarioResults(runID string) ([]*models.ScenarioResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.results[runID]
	results := make([]*models.ScenarioResult, 0, len(stored))
	for i := range stored {
		result := stored[i]
		results = append(results, &result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].StartedAt.Equal(results[j].StartedAt) {
			return results[i].Name < results[j].Name
		}
		return results[i].StartedAt.Before(results[j].StartedAt)
	})
	return results, nil
}
