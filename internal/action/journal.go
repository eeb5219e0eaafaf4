package action

import (
	"fmt"
	"sync"
	"time"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one observation made while executing an action: a
// candidate that did not match, a fallback taken, a default returned
type Diagnostic struct {
	Time     time.Time `json:"time"`
	Severity Severity  `json:"severity"`
	Action   string    `json:"action"`
	Target   string    `json:"target"`
	Message  string    `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", d.Severity, d.Action, d.Target, d.Message)
}

// Journal collects diagnostics for one scenario. Safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	entries []Diagnostic
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends d, stamping it if it has no time
func (j *Journal) Record(d Diagnostic) {
	if d.Time.IsZero() {
		d.Time = time.Now()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, d)
}

// Warn records a warning outside of an executor call
func (j *Journal) Warn(action, target, format string, args ...any) {
	j.Record(Diagnostic{
		Severity: SeverityWarning,
		Action:   action,
		Target:   target,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Entries returns a copy of everything recorded
func (j *Journal) Entries() []Diagnostic {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Diagnostic, len(j.entries))
	copy(out, j.entries)
	return out
}

// Warnings returns only warning entries
func (j *Journal) Warnings() []Diagnostic {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Diagnostic
	for _, d := range j.entries {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Reset discards all entries
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}
