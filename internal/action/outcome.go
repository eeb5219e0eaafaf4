package action

import (
	"context"
	"fmt"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
)

// Outcome is the result of a resilient action. "Nothing matched" is an
// outcome, not an error: Value then holds the action's default and
// Degraded is set.
type Outcome[T any] struct {
	Value T
	// Matched describes the candidate or fallback that was acted on
	Matched     string
	Degraded    bool
	Diagnostics []Diagnostic
}

// OK reports whether a candidate or fallback was acted on
func (o Outcome[T]) OK() bool {
	return !o.Degraded
}

// Fallback is an alternative procedure tried after every candidate of a
// spec failed to match. Target is probed first, like a candidate.
type Fallback struct {
	Name   string
	Target locator.Candidate
	// Do performs the procedure on the matched Target. Nil runs the
	// action's own primitive on Target.
	Do func(ctx context.Context, page driver.Page, el driver.Element) error
}

// DriverFault wraps a driver error that is not a timeout: a crashed page,
// a closed browser, an element that cannot take the primitive
type DriverFault struct {
	Action string
	Target string
	Err    error
}

func (e *DriverFault) Error() string {
	return fmt.Sprintf("driver fault during %s on %s: %v", e.Action, e.Target, e.Err)
}

func (e *DriverFault) Unwrap() error {
	return e.Err
}
