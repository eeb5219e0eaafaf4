package models

import (
	"time"

	"github.com/google/uuid"
)

// ScenarioStatus is the verdict of one journey
type ScenarioStatus string

// Scenario statuses
const (
	ScenarioStatusPassed ScenarioStatus = "passed"
	ScenarioStatusFailed ScenarioStatus = "failed"
)

// FailureKind classifies why a journey failed
type FailureKind string

// Failure kinds
const (
	FailureNone             FailureKind = ""
	FailureAssertion        FailureKind = "assertion"
	FailureAssertiveTimeout FailureKind = "assertive_timeout"
	FailureDriverFault      FailureKind = "driver_fault"
	FailureCancelled        FailureKind = "cancelled"
	FailureUnknown          FailureKind = "error"
)

// ScenarioResult is the recorded outcome of one journey within a run
type ScenarioResult struct {
	ID          string         `json:"id"`
	RunID       string         `json:"runId"`
	Name        string         `json:"name"`
	Tags        []string       `json:"tags"`
	Status      ScenarioStatus `json:"status"`
	FailureKind FailureKind    `json:"failureKind,omitempty"`
	Message     string         `json:"message,omitempty"`
	Screenshot  string         `json:"screenshot,omitempty"`
	Diagnostics []string       `json:"diagnostics"`
	StartedAt   time.Time      `json:"startedAt"`
	Duration    time.Duration  `json:"duration"`
}

// NewScenarioResult creates a passed result; call Fail to flip it
func NewScenarioResult(runID, name string, tags []string, started time.Time, elapsed time.Duration) (*ScenarioResult, error) {
	if name == "" {
		return nil, ErrInvalidScenarioName
	}
	return &ScenarioResult{
		ID:          uuid.New().String(),
		RunID:       runID,
		Name:        name,
		Tags:        tags,
		Status:      ScenarioStatusPassed,
		Diagnostics: []string{},
		StartedAt:   started,
		Duration:    elapsed,
	}, nil
}

// Fail marks the result failed with a kind and message
func (s *ScenarioResult) Fail(kind FailureKind, message string) {
	if kind == FailureNone {
		kind = FailureUnknown
	}
	s.Status = ScenarioStatusFailed
	s.FailureKind = kind
	s.Message = message
}

// IsPassed returns true if the journey passed
func (s *ScenarioResult) IsPassed() bool {
	return s.Status == ScenarioStatusPassed
}
