package models

import (
	"testing"
	"time"
)

func TestNewScenarioResult(t *testing.T) {
	started := time.Now()

	result, err := NewScenarioResult("run-1", "search-no-results", []string{"search"}, started, 2*time.Second)
	if err != nil {
		t.Fatalf("NewScenarioResult() unexpected error = %v", err)
	}
	if result.ID == "" {
		t.Error("Result ID should not be empty")
	}
	if !result.IsPassed() {
		t.Errorf("Expected status %s, got %s", ScenarioStatusPassed, result.Status)
	}
	if result.Diagnostics == nil {
		t.Error("Diagnostics should be an empty slice, not nil")
	}

	if _, err := NewScenarioResult("run-1", "", nil, started, 0); err != ErrInvalidScenarioName {
		t.Errorf("Expected ErrInvalidScenarioName, got %v", err)
	}
}

func TestScenarioResult_Fail(t *testing.T) {
	tests := []struct {
		name     string
		kind     FailureKind
		wantKind FailureKind
	}{
		{"assertion", FailureAssertion, FailureAssertion},
		{"driver fault", FailureDriverFault, FailureDriverFault},
		{"unclassified", FailureNone, FailureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := NewScenarioResult("run-1", "cart-add", nil, time.Now(), 0)
			result.Fail(tt.kind, "boom")

			if result.IsPassed() {
				t.Error("Expected result to be failed")
			}
			if result.FailureKind != tt.wantKind {
				t.Errorf("Expected kind %q, got %q", tt.wantKind, result.FailureKind)
			}
			if result.Message != "boom" {
				t.Errorf("Expected message %q, got %q", "boom", result.Message)
			}
		})
	}
}
