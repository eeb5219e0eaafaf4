// Package locator describes logical UI targets as ordered lists of selector
// candidates. The first usable candidate wins; order is preference.
package locator

import (
	"errors"
	"fmt"
)

// ErrEmptySpec is returned when a spec is built without candidates
var ErrEmptySpec = errors.New("locator spec has no candidates")

// Spec is a named, ordered, non-empty list of candidates for one target.
// The zero value is not usable; build one with New or MustNew.
type Spec struct {
	name       string
	candidates []Candidate
}

// New validates candidates and returns an immutable spec
func New(name string, candidates ...Candidate) (Spec, error) {
	if len(candidates) == 0 {
		return Spec{}, fmt.Errorf("%s: %w", name, ErrEmptySpec)
	}
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			return Spec{}, fmt.Errorf("%s: candidate %d: %w", name, i, err)
		}
	}
	cs := make([]Candidate, len(candidates))
	copy(cs, candidates)
	return Spec{name: name, candidates: cs}, nil
}

// MustNew is New for hard-coded candidate lists; it panics on invalid input
func MustNew(name string, candidates ...Candidate) Spec {
	s, err := New(name, candidates...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the logical target name
func (s Spec) Name() string {
	return s.name
}

// Candidates returns a copy of the candidates in preference order
func (s Spec) Candidates() []Candidate {
	cs := make([]Candidate, len(s.candidates))
	copy(cs, s.candidates)
	return cs
}

// Len returns the number of candidates
func (s Spec) Len() int {
	return len(s.candidates)
}

// Primary returns the most preferred candidate
func (s Spec) Primary() Candidate {
	if len(s.candidates) == 0 {
		return Candidate{}
	}
	return s.candidates[0]
}

// IsZero reports whether the spec was never built
func (s Spec) IsZero() bool {
	return len(s.candidates) == 0
}
