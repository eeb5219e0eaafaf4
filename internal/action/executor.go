// Package action runs page interactions against ordered locator fallback
// chains. Each call probes candidates in order, acts on the first one that
// is present and, when none is, returns the action's default together with
// diagnostics instead of failing.
package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/logging"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Executor performs resilient actions on one page. It is used by a single
// scenario and runs strictly sequentially.
type Executor struct {
	page          driver.Page
	probeTimeout  time.Duration
	assertTimeout time.Duration
	journal       *Journal
	log           logrus.FieldLogger
}

// ExecutorOption configures an Executor
type ExecutorOption func(*Executor)

// WithProbeTimeout sets how long each candidate is probed for, at most
// wait.ProbeTimeout
func WithProbeTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.probeTimeout = probeWindow(d)
		}
	}
}

// WithAssertTimeout sets the wait used by Assertive calls
func WithAssertTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.assertTimeout = d
		}
	}
}

// WithJournal records diagnostics into j instead of a private journal
func WithJournal(j *Journal) ExecutorOption {
	return func(e *Executor) {
		if j != nil {
			e.journal = j
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logrus.FieldLogger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// NewExecutor creates an executor for page
func NewExecutor(page driver.Page, opts ...ExecutorOption) *Executor {
	e := &Executor{
		page:          page,
		probeTimeout:  wait.ProbeTimeout,
		assertTimeout: wait.DefaultTimeout,
		journal:       NewJournal(),
		log:           logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Page returns the page actions run against
func (e *Executor) Page() driver.Page {
	return e.page
}

// Journal returns the journal diagnostics are recorded into
func (e *Executor) Journal() *Journal {
	return e.journal
}

// ProbeTimeout returns the default per-candidate probe timeout
func (e *Executor) ProbeTimeout() time.Duration {
	return e.probeTimeout
}

// Fill types value into the first present candidate. It reports false
// when no candidate was present.
func (e *Executor) Fill(ctx context.Context, spec locator.Spec, value string, opts ...Option) (Outcome[bool], error) {
	return run(ctx, e, spec, opts, op[bool]{
		name:     "fill",
		mutating: true,
		state:    wait.Visible,
		done:     true,
		prim: func(ctx context.Context, el driver.Element) (bool, error) {
			return true, el.Fill(ctx, value)
		},
	})
}

// Click clicks the first present candidate
func (e *Executor) Click(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[bool], error) {
	return run(ctx, e, spec, opts, op[bool]{
		name:     "click",
		mutating: true,
		state:    wait.Visible,
		done:     true,
		prim: func(ctx context.Context, el driver.Element) (bool, error) {
			return true, el.Click(ctx)
		},
	})
}

// Check ticks the first present checkbox candidate
func (e *Executor) Check(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[bool], error) {
	return run(ctx, e, spec, opts, op[bool]{
		name:     "check",
		mutating: true,
		state:    wait.Visible,
		done:     true,
		prim: func(ctx context.Context, el driver.Element) (bool, error) {
			return true, el.Check(ctx)
		},
	})
}

// Select chooses the option whose value (or label) is value
func (e *Executor) Select(ctx context.Context, spec locator.Spec, value string, opts ...Option) (Outcome[bool], error) {
	return run(ctx, e, spec, opts, op[bool]{
		name:     "select",
		mutating: true,
		state:    wait.Visible,
		done:     true,
		prim: func(ctx context.Context, el driver.Element) (bool, error) {
			return true, el.SelectOption(ctx, value)
		},
	})
}

// Text returns the text content of the matched element; default ""
func (e *Executor) Text(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[string], error) {
	return run(ctx, e, spec, opts, op[string]{
		name:  "text",
		state: wait.Visible,
		prim: func(ctx context.Context, el driver.Element) (string, error) {
			return el.TextContent(ctx)
		},
	})
}

// Value returns the current value of the matched input; default ""
func (e *Executor) Value(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[string], error) {
	return run(ctx, e, spec, opts, op[string]{
		name:  "value",
		state: wait.Attached,
		prim: func(ctx context.Context, el driver.Element) (string, error) {
			return el.InputValue(ctx)
		},
	})
}

// Attribute returns attribute name of the matched element; default ""
func (e *Executor) Attribute(ctx context.Context, spec locator.Spec, name string, opts ...Option) (Outcome[string], error) {
	return run(ctx, e, spec, opts, op[string]{
		name:  "attribute",
		state: wait.Attached,
		prim: func(ctx context.Context, el driver.Element) (string, error) {
			return el.Attribute(ctx, name)
		},
	})
}

// Count returns how many elements the first present candidate matches; default 0
func (e *Executor) Count(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[int], error) {
	return run(ctx, e, spec, opts, op[int]{
		name:  "count",
		set:   true,
		state: wait.Attached,
		prim: func(ctx context.Context, el driver.Element) (int, error) {
			return el.Count(ctx)
		},
	})
}

// List returns the text of every element the first present candidate
// matches; default is an empty, non-nil slice
func (e *Executor) List(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[[]string], error) {
	return run(ctx, e, spec, opts, op[[]string]{
		name:  "list",
		set:   true,
		state: wait.Attached,
		def:   []string{},
		done:  []string{},
		prim: func(ctx context.Context, el driver.Element) ([]string, error) {
			return el.AllTextContents(ctx)
		},
	})
}

// Present reports whether any candidate reaches the probe state. Absence
// is an answer, so the outcome is never degraded.
func (e *Executor) Present(ctx context.Context, spec locator.Spec, opts ...Option) (Outcome[bool], error) {
	return run(ctx, e, spec, opts, op[bool]{
		name:  "present",
		state: wait.Visible,
		quiet: true,
		done:  true,
		prim: func(context.Context, driver.Element) (bool, error) {
			return true, nil
		},
	})
}

type op[T any] struct {
	name     string
	mutating bool
	// set ops act on every match unless Nth or Last is given
	set   bool
	state wait.State
	def   T
	// done is the value reported when a fallback's Do procedure succeeds
	done  T
	quiet bool
	prim  func(context.Context, driver.Element) (T, error)
}

type step int

const (
	missed step = iota
	acted
	stopped
)

func run[T any](ctx context.Context, e *Executor, spec locator.Spec, opts []Option, o op[T]) (Outcome[T], error) {
	c := call{state: o.state, timeout: e.probeTimeout}
	for _, opt := range opts {
		opt(&c)
	}
	c.timeout = probeWindow(c.timeout)

	r := &runner[T]{e: e, o: o, c: c, spec: spec, out: Outcome[T]{Value: o.def}}
	log := e.log.WithFields(logrus.Fields{"action": o.name, "target": spec.Name()})

	if spec.IsZero() {
		return r.out, &DriverFault{Action: o.name, Target: "<unnamed>", Err: locator.ErrEmptySpec}
	}

	for _, cand := range spec.Candidates() {
		s, err := r.try(ctx, cand.String(), cand, o.prim)
		if err != nil {
			return r.out, err
		}
		switch s {
		case acted:
			log.WithField("candidate", cand.String()).Debug("action performed")
			return r.out, nil
		case stopped:
			return r.degrade(log), nil
		}
	}

	for _, fb := range c.fallbacks {
		prim := o.prim
		if fb.Do != nil {
			do := fb.Do
			prim = func(ctx context.Context, el driver.Element) (T, error) {
				return o.done, do(ctx, e.page, el)
			}
		}
		s, err := r.try(ctx, "fallback "+fb.Name, fb.Target, prim)
		if err != nil {
			return r.out, err
		}
		switch s {
		case acted:
			r.note(SeverityInfo, "used fallback %q", fb.Name)
			log.WithField("fallback", fb.Name).Info("fallback used")
			return r.out, nil
		case stopped:
			return r.degrade(log), nil
		}
	}

	if c.assertive {
		return r.assert(ctx)
	}
	if o.quiet {
		r.note(SeverityInfo, "no candidate present")
		return r.out, nil
	}
	return r.degrade(log), nil
}

// probeWindow bounds a per-candidate wait by wait.ProbeTimeout
func probeWindow(d time.Duration) time.Duration {
	if d <= 0 || d > wait.ProbeTimeout {
		return wait.ProbeTimeout
	}
	return d
}

type runner[T any] struct {
	e    *Executor
	o    op[T]
	c    call
	spec locator.Spec
	out  Outcome[T]
}

func (r *runner[T]) target(cand locator.Candidate) (el, probe driver.Element) {
	el = r.e.page.Locate(cand)
	switch {
	case r.c.pick != nil:
		el = r.c.pick(el)
	case !r.o.set:
		el = el.First()
	}
	return el, el.First()
}

func (r *runner[T]) try(ctx context.Context, label string, cand locator.Candidate, prim func(context.Context, driver.Element) (T, error)) (step, error) {
	el, probe := r.target(cand)

	ok, err := wait.Probe(ctx, probe, wait.Policy{State: r.c.state, Timeout: r.c.timeout})
	if err != nil {
		return missed, r.fault(ctx, label, err)
	}
	if !ok {
		r.note(SeverityInfo, "%s not %s within %s", label, r.c.state, r.c.timeout)
		return missed, nil
	}

	v, err := prim(ctx, el)
	switch {
	case err == nil:
		r.out.Value = v
		r.out.Matched = label
		return acted, nil
	case ctx.Err() != nil:
		return missed, ctx.Err()
	case errors.Is(err, wait.ErrTimeout):
		r.note(SeverityWarning, "%s matched but %s timed out: %v", label, r.o.name, err)
		if r.o.mutating {
			return stopped, nil
		}
		return missed, nil
	default:
		return missed, r.fault(ctx, label, err)
	}
}

// assert waits for the primary candidate and acts on it once it appears
func (r *runner[T]) assert(ctx context.Context) (Outcome[T], error) {
	primary := r.spec.Primary()
	el, probe := r.target(primary)

	err := wait.Assert(ctx, r.spec.Name(), probe, wait.Policy{State: r.c.state, Timeout: r.e.assertTimeout})
	if err != nil {
		var te *wait.TimeoutError
		if errors.As(err, &te) || ctx.Err() != nil {
			r.out.Degraded = true
			r.note(SeverityWarning, "%v", err)
			return r.out, err
		}
		return r.out, r.fault(ctx, primary.String(), err)
	}

	v, err := r.o.prim(ctx, el)
	if err != nil {
		if ctx.Err() != nil {
			return r.out, ctx.Err()
		}
		if errors.Is(err, wait.ErrTimeout) {
			r.out.Degraded = true
			return r.out, &wait.TimeoutError{Target: r.spec.Name(), State: r.c.state, Timeout: r.e.assertTimeout, Err: err}
		}
		return r.out, r.fault(ctx, primary.String(), err)
	}
	r.out.Value = v
	r.out.Matched = primary.String()
	return r.out, nil
}

func (r *runner[T]) degrade(log logrus.FieldLogger) Outcome[T] {
	r.out.Value = r.o.def
	r.out.Matched = ""
	r.out.Degraded = true
	r.note(SeverityWarning, "no candidate matched; returned default")
	log.Warn("no candidate matched")
	return r.out
}

func (r *runner[T]) fault(ctx context.Context, label string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	r.note(SeverityWarning, "%s failed: %v", label, err)
	return &DriverFault{Action: r.o.name, Target: fmt.Sprintf("%s (%s)", r.spec.Name(), label), Err: err}
}

func (r *runner[T]) note(sev Severity, format string, args ...any) {
	d := Diagnostic{
		Time:     time.Now(),
		Severity: sev,
		Action:   r.o.name,
		Target:   r.spec.Name(),
		Message:  fmt.Sprintf(format, args...),
	}
	r.out.Diagnostics = append(r.out.Diagnostics, d)
	r.e.journal.Record(d)
}
