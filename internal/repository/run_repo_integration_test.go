//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/adyen/ecommerce-e2e/internal/models"
	"github.com/adyen/ecommerce-e2e/internal/repository/testutil"
)

func TestRunRepository_CreateAndGetRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	tests := []struct {
		name    string
		baseURL string
		driver  string
		browser string
	}{
		{"playwright run", "https://demo.nopcommerce.com/", "playwright", "chromium"},
		{"offline run", "http://store.test/", "html", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := models.NewRun(tt.baseURL, tt.driver, tt.browser)
			if err != nil {
				t.Fatalf("NewRun() unexpected error = %v", err)
			}

			if err := repo.CreateRun(run); err != nil {
				t.Fatalf("CreateRun() error = %v", err)
			}

			got, err := repo.GetRun(run.ID)
			if err != nil {
				t.Fatalf("GetRun() error = %v", err)
			}
			if got.BaseURL != tt.baseURL {
				t.Errorf("Expected base URL %s, got %s", tt.baseURL, got.BaseURL)
			}
			if got.Driver != tt.driver {
				t.Errorf("Expected driver %s, got %s", tt.driver, got.Driver)
			}
			if got.Status != models.RunStatusRunning {
				t.Errorf("Expected status %s, got %s", models.RunStatusRunning, got.Status)
			}
			if !got.FinishedAt.IsZero() {
				t.Error("Expected FinishedAt to be NULL for a running run")
			}
		})
	}
}

func TestRunRepository_GetRun_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	_, err := repo.GetRun("00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, models.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_UpdateRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	run, _ := models.NewRun("http://store.test/", "html", "")
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	result, _ := models.NewScenarioResult(run.ID, "cart-add", []string{"cart"}, time.Now(), time.Second)
	result.Fail(models.FailureAssertion, "cart count: expected > 0, got 0")
	if err := run.Record(result); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := run.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	if err := repo.UpdateRun(run); err != nil {
		t.Fatalf("UpdateRun() error = %v", err)
	}

	got, err := repo.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Status != models.RunStatusFailed {
		t.Errorf("Expected status %s, got %s", models.RunStatusFailed, got.Status)
	}
	if got.Total != 1 || got.Failed != 1 {
		t.Errorf("Expected 1 total and 1 failed, got %d and %d", got.Total, got.Failed)
	}
	if got.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}

	missing := &models.Run{ID: "00000000-0000-0000-0000-000000000000", Status: models.RunStatusAborted}
	if err := repo.UpdateRun(missing); !errors.Is(err, models.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
}

func TestRunRepository_ListRuns_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	var ids []string
	for i := 0; i < 3; i++ {
		run, _ := models.NewRun("http://store.test/", "html", "")
		run.StartedAt = time.Now().Add(time.Duration(i) * time.Minute)
		if err := repo.CreateRun(run); err != nil {
			t.Fatalf("CreateRun() error = %v", err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := repo.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("Expected newest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestRunRepository_ScenarioResults_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepositoryWithDB(testDB.DB)

	run, _ := models.NewRun("http://store.test/", "html", "")
	if err := repo.CreateRun(run); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	start := time.Now()
	first, _ := models.NewScenarioResult(run.ID, "login-invalid", []string{"login", "smoke"}, start, 1500*time.Millisecond)
	second, _ := models.NewScenarioResult(run.ID, "newsletter", nil, start.Add(time.Second), time.Second)
	second.Fail(models.FailureDriverFault, "page closed")
	second.Screenshot = "screenshots/newsletter-2024-05-01T12-00-00-000Z.png"
	second.Diagnostics = []string{"[warning] fill newsletter.input: no candidate matched"}

	for _, r := range []*models.ScenarioResult{second, first} {
		if err := repo.CreateScenarioResult(r); err != nil {
			t.Fatalf("CreateScenarioResult() error = %v", err)
		}
	}

	results, err := repo.ListScenarioResults(run.ID)
	if err != nil {
		t.Fatalf("ListScenarioResults() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Name != "login-invalid" {
		t.Errorf("Expected login-invalid first, got %s", results[0].Name)
	}
	if len(results[0].Tags) != 2 || results[0].Tags[1] != "smoke" {
		t.Errorf("Expected tags [login smoke], got %v", results[0].Tags)
	}
	if results[0].Duration != 1500*time.Millisecond {
		t.Errorf("Expected duration 1.5s, got %s", results[0].Duration)
	}
	if results[1].FailureKind != models.FailureDriverFault {
		t.Errorf("Expected failure kind %s, got %s", models.FailureDriverFault, results[1].FailureKind)
	}
	if results[1].Screenshot != second.Screenshot {
		t.Errorf("Expected screenshot %s, got %s", second.Screenshot, results[1].Screenshot)
	}
	if len(results[1].Diagnostics) != 1 {
		t.Errorf("Expected 1 diagnostic, got %d", len(results[1].Diagnostics))
	}
}
