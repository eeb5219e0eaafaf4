package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/adyen/ecommerce-e2e/internal/models"
)

func TestMemoryRunRepository_RunLifecycle(t *testing.T) {
	repo := NewMemoryRunRepository()

	run, err := models.NewRun("http://store.test/", "html", "")
	if err != nil {
		t.Fatalf("NewRun() unexpected error = %v", err)
	}
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() unexpected error = %v", err)
	}
	if err := repo.CreateRun(run); err == nil {
		t.Error("expected duplicate CreateRun to fail")
	}

	// Mutating the caller's copy must not leak into the store
	run.Total = 99
	stored, err := repo.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() unexpected error = %v", err)
	}
	if stored.Total != 0 {
		t.Errorf("expected stored total 0, got %d", stored.Total)
	}

	stored.Total = 1
	stored.Passed = 1
	if err := stored.Finish(); err != nil {
		t.Fatalf("Finish() unexpected error = %v", err)
	}
	if err := repo.UpdateRun(stored); err != nil {
		t.Fatalf("UpdateRun() unexpected error = %v", err)
	}

	reloaded, _ := repo.GetRun(run.ID)
	if reloaded.Status != models.RunStatusPassed {
		t.Errorf("expected status %s, got %s", models.RunStatusPassed, reloaded.Status)
	}
	if reloaded.FinishedAt.IsZero() {
		t.Error("expected FinishedAt to be persisted")
	}
}

func TestMemoryRunRepository_NotFound(t *testing.T) {
	repo := NewMemoryRunRepository()

	if _, err := repo.GetRun("missing"); !errors.Is(err, models.ErrRunNotFound) {
		t.Errorf("GetRun() expected ErrRunNotFound, got %v", err)
	}
	if err := repo.UpdateRun(&models.Run{ID: "missing"}); !errors.Is(err, models.ErrRunNotFound) {
		t.Errorf("UpdateRun() expected ErrRunNotFound, got %v", err)
	}
	result := &models.ScenarioResult{ID: "r", RunID: "missing", Name: "x"}
	if err := repo.CreateScenarioResult(result); !errors.Is(err, models.ErrRunNotFound) {
		t.Errorf("CreateScenarioResult() expected ErrRunNotFound, got %v", err)
	}
}

func TestMemoryRunRepository_ListRuns(t *testing.T) {
	repo := NewMemoryRunRepository()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"oldest", "middle", "newest"} {
		run := &models.Run{ID: id, Status: models.RunStatusRunning, StartedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.CreateRun(run); err != nil {
			t.Fatalf("CreateRun() unexpected error = %v", err)
		}
	}

	tests := []struct {
		name    string
		limit   int
		wantIDs []string
	}{
		{"all", 0, []string{"newest", "middle", "oldest"}},
		{"limited", 2, []string{"newest", "middle"}},
		{"limit above size", 10, []string{"newest", "middle", "oldest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.ListRuns(tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() unexpected error = %v", err)
			}
			if len(runs) != len(tt.wantIDs) {
				t.Fatalf("expected %d runs, got %d", len(tt.wantIDs), len(runs))
			}
			for i, id := range tt.wantIDs {
				if runs[i].ID != id {
					t.Errorf("runs[%d]: expected %s, got %s", i, id, runs[i].ID)
				}
			}
		})
	}
}

func TestMemoryRunRepository_ScenarioResults(t *testing.T) {
	repo := NewMemoryRunRepository()
	run, _ := models.NewRun("http://store.test/", "html", "")
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() unexpected error = %v", err)
	}

	start := time.Now()
	late, _ := models.NewScenarioResult(run.ID, "search-no-results", []string{"search"}, start.Add(time.Second), time.Second)
	early, _ := models.NewScenarioResult(run.ID, "login-invalid", []string{"login"}, start, 2*time.Second)
	early.Fail(models.FailureAssertion, "still logged out")
	early.Diagnostics = []string{"[warning] click login.submit: no candidate matched"}

	for _, r := range []*models.ScenarioResult{late, early} {
		if err := repo.CreateScenarioResult(r); err != nil {
			t.Fatalf("CreateScenarioResult() unexpected error = %v", err)
		}
	}

	results, err := repo.ListScenarioResults(run.ID)
	if err != nil {
		t.Fatalf("ListScenarioResults() unexpected error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "login-invalid" || results[1].Name != "search-no-results" {
		t.Errorf("expected start order, got %s, %s", results[0].Name, results[1].Name)
	}
	if results[0].FailureKind != models.FailureAssertion {
		t.Errorf("expected failure kind %s, got %s", models.FailureAssertion, results[0].FailureKind)
	}
	if len(results[0].Diagnostics) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(results[0].Diagnostics))
	}

	empty, err := repo.ListScenarioResults("other")
	if err != nil {
		t.Fatalf("ListScenarioResults() unexpected error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no results for unknown run, got %d", len(empty))
	}
}
