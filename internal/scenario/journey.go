// Package scenario runs user journeys against a storefront. Each journey
// gets its own page and pages.Context; journeys run concurrently up to a
// limit and every outcome is recorded through the run service.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/adyen/ecommerce-e2e/internal/pages"
)

var (
	ErrNoJourneys     = errors.New("no journeys selected")
	ErrUnknownJourney = errors.New("unknown journey")
)

// Journey is one named user flow. Run returns nil on success, an
// *AssertionFailure when the storefront misbehaved, or the error of the
// page operation that could not proceed.
type Journey struct {
	Name string
	Tags []string
	Run  func(ctx context.Context, pc *pages.Context) error
}

// HasTag reports whether the journey carries tag
func (j Journey) HasTag(tag string) bool {
	return slices.Contains(j.Tags, tag)
}

// Select returns the journeys named in names or tagged with any of tags,
// in their original order. With neither filter every journey is returned.
func Select(all []Journey, names, tags []string) ([]Journey, error) {
	for _, name := range names {
		if !slices.ContainsFunc(all, func(j Journey) bool { return j.Name == name }) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownJourney, name)
		}
	}
	if len(names) == 0 && len(tags) == 0 {
		if len(all) == 0 {
			return nil, ErrNoJourneys
		}
		return slices.Clone(all), nil
	}

	var out []Journey
	for _, j := range all {
		if slices.Contains(names, j.Name) || slices.ContainsFunc(tags, j.HasTag) {
			out = append(out, j)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoJourneys
	}
	return out, nil
}
