// Package wait implements bounded waits. A wait never blocks past its
// timeout; callers pick probe mode (timeout means "absent") or assertive
// mode (timeout is a failure) at every call site.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// State is the condition a wait is satisfied by
type State string

// Wait states
const (
	Visible     State = "visible"
	Attached    State = "attached"
	Hidden      State = "hidden"
	NetworkIdle State = "networkidle"
)

// Default timeouts
const (
	DefaultTimeout = 30 * time.Second
	ProbeTimeout   = 5 * time.Second
	PollInterval   = 100 * time.Millisecond
)

// ErrTimeout marks a wait that ran out of time. Drivers wrap their own
// timeout errors with it so callers can use errors.Is.
var ErrTimeout = errors.New("wait timed out")

// Policy is the transient wait parameter for a single call
type Policy struct {
	State   State
	Timeout time.Duration
}

// Waiter is anything that can wait for a state, typically a driver element
type Waiter interface {
	WaitFor(ctx context.Context, state State, timeout time.Duration) error
}

// WaiterFunc adapts a function to Waiter
type WaiterFunc func(ctx context.Context, state State, timeout time.Duration) error

// WaitFor calls f
func (f WaiterFunc) WaitFor(ctx context.Context, state State, timeout time.Duration) error {
	return f(ctx, state, timeout)
}

// TimeoutError is returned by assertive waits
type TimeoutError struct {
	Target  string
	State   State
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s to be %s", e.Timeout, e.Target, e.State)
}

// Unwrap exposes ErrTimeout and the driver error
func (e *TimeoutError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTimeout}
	}
	return []error{ErrTimeout, e.Err}
}

func (p Policy) withDefaults(timeout time.Duration) Policy {
	if p.State == "" {
		p.State = Visible
	}
	if p.Timeout <= 0 {
		p.Timeout = timeout
	}
	return p
}

// Probe waits in probe mode: a timeout reports false with no error. Any
// other error, including context cancellation, is returned.
func Probe(ctx context.Context, w Waiter, p Policy) (bool, error) {
	p = p.withDefaults(ProbeTimeout)
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err := w.WaitFor(ctx, p.State, p.Timeout)
	switch {
	case err == nil:
		return true, nil
	case ctx.Err() != nil:
		return false, ctx.Err()
	case errors.Is(err, ErrTimeout):
		return false, nil
	default:
		return false, err
	}
}

// Assert waits in assertive mode: a timeout becomes a *TimeoutError naming target
func Assert(ctx context.Context, target string, w Waiter, p Policy) error {
	p = p.withDefaults(DefaultTimeout)
	if err := ctx.Err(); err != nil {
		return err
	}

	err := w.WaitFor(ctx, p.State, p.Timeout)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, ErrTimeout):
		return &TimeoutError{Target: target, State: p.State, Timeout: p.Timeout, Err: err}
	default:
		return err
	}
}

// Poll evaluates cond every interval until it reports true, it fails, the
// timeout elapses (ErrTimeout) or ctx is done (ctx.Err()). cond is always
// evaluated at least once.
func Poll(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = PollInterval
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w after %s", ErrTimeout, timeout)
		case <-ticker.C:
		}
	}
}
