package action

import (
	"time"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Option adjusts a single executor call
type Option func(*call)

type call struct {
	pick      func(driver.Element) driver.Element
	state     wait.State
	timeout   time.Duration
	fallbacks []Fallback
	assertive bool
}

// Nth acts on the i-th match (zero based) instead of the first
func Nth(i int) Option {
	return func(c *call) {
		c.pick = func(el driver.Element) driver.Element { return el.Nth(i) }
	}
}

// Last acts on the last match
func Last() Option {
	return func(c *call) {
		c.pick = func(el driver.Element) driver.Element { return el.Last() }
	}
}

// Until overrides the state each candidate is probed for
func Until(state wait.State) Option {
	return func(c *call) {
		c.state = state
	}
}

// Within overrides the per-candidate probe timeout. Values above
// wait.ProbeTimeout are capped.
func Within(timeout time.Duration) Option {
	return func(c *call) {
		c.timeout = timeout
	}
}

// WithFallback appends fallbacks, tried in order after the spec's candidates
func WithFallback(fbs ...Fallback) Option {
	return func(c *call) {
		c.fallbacks = append(c.fallbacks, fbs...)
	}
}

// Assertive turns exhaustion into a final assertive wait on the primary
// candidate, failing with *wait.TimeoutError if it never appears
func Assertive() Option {
	return func(c *call) {
		c.assertive = true
	}
}
