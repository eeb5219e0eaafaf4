package pages

import (
	"context"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
)

// SearchPage is the header quick search and the search results page
type SearchPage struct {
	pc *Context
}

// NewSearchPage returns the search page object over pc
func NewSearchPage(pc *Context) *SearchPage {
	return &SearchPage{pc: pc}
}

// Search runs a quick search for term. Without a search button the term
// is submitted with Enter.
func (s *SearchPage) Search(ctx context.Context, term string) error {
	exec := s.pc.exec
	if _, err := exec.Fill(ctx, s.pc.Spec(searchBox), term); err != nil {
		return err
	}
	box := s.pc.Spec(searchBox).Primary()
	_, err := exec.Click(ctx, s.pc.Spec(searchButton), action.WithFallback(action.Fallback{
		Name:   "submit search with Enter",
		Target: box,
		Do: func(ctx context.Context, page driver.Page, el driver.Element) error {
			if err := el.Fill(ctx, term); err != nil {
				return err
			}
			return page.Press(ctx, driver.KeyEnter)
		},
	}))
	if err != nil {
		return err
	}
	return s.pc.WaitForNavigation(ctx)
}

// SearchResults returns the number of result tiles; 0 when none appear
func (s *SearchPage) SearchResults(ctx context.Context) (int, error) {
	out, err := s.pc.exec.Count(ctx, s.pc.Spec(searchResults), action.Within(s.pc.slow()))
	return out.Value, err
}

// ProductTitles returns the titles of the results, trimmed
func (s *SearchPage) ProductTitles(ctx context.Context) ([]string, error) {
	out, err := s.pc.exec.List(ctx, s.pc.Spec(searchTitles))
	return trimAll(out.Value), err
}

// HasNoResultsMessage reports whether the "no products" message is shown
func (s *SearchPage) HasNoResultsMessage(ctx context.Context) (bool, error) {
	out, err := s.pc.exec.Present(ctx, s.pc.Spec(searchNoResults))
	return out.Value, err
}

// NoResultsMessage returns the "no products" message, or ""
func (s *SearchPage) NoResultsMessage(ctx context.Context) (string, error) {
	out, err := s.pc.exec.Text(ctx, s.pc.Spec(searchNoResults))
	return strings.TrimSpace(out.Value), err
}

// NavigateToAdvancedSearch opens the search page with the advanced filters
// shown
func (s *SearchPage) NavigateToAdvancedSearch(ctx context.Context) error {
	if err := s.pc.Navigate(ctx, "search"); err != nil {
		return err
	}
	if err := s.pc.WaitForNavigation(ctx); err != nil {
		return err
	}
	exec := s.pc.exec
	toggled, err := exec.Check(ctx, s.pc.Spec(searchAdvToggle))
	if err != nil || toggled.OK() {
		return err
	}
	if _, err := exec.Click(ctx, s.pc.Spec(searchAdvLink)); err != nil {
		return err
	}
	return s.pc.WaitForNavigation(ctx)
}

// AdvancedSearch fills the advanced form from f, skipping empty fields,
// and submits it. A missing search button fails with *wait.TimeoutError.
func (s *SearchPage) AdvancedSearch(ctx context.Context, f fixtures.AdvancedSearch) error {
	exec := s.pc.exec
	if f.SearchTerm != "" {
		if _, err := exec.Fill(ctx, s.pc.Spec(searchTerm), f.SearchTerm); err != nil {
			return err
		}
	}
	if f.Category != "" {
		if _, err := exec.Select(ctx, s.pc.Spec(searchCategory), f.Category); err != nil {
			return err
		}
	}
	if f.Manufacturer != "" {
		if _, err := exec.Select(ctx, s.pc.Spec(searchMaker), f.Manufacturer); err != nil {
			return err
		}
	}
	if f.PriceFrom != "" {
		if _, err := exec.Fill(ctx, s.pc.Spec(searchPriceFrom), f.PriceFrom); err != nil {
			return err
		}
	}
	if f.PriceTo != "" {
		if _, err := exec.Fill(ctx, s.pc.Spec(searchPriceTo), f.PriceTo); err != nil {
			return err
		}
	}
	if f.SearchInDescriptions {
		if _, err := exec.Check(ctx, s.pc.Spec(searchInDesc)); err != nil {
			return err
		}
	}
	if _, err := exec.Click(ctx, s.pc.Spec(searchSubmit), action.Assertive()); err != nil {
		return err
	}
	return s.pc.WaitForNavigation(ctx)
}
