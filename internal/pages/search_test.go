package pages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/fakestore"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

func TestSearchPage_Search(t *testing.T) {
	searches, err := fixtures.DefaultSearches()
	require.NoError(t, err)

	for _, s := range append(searches.ValidSearches, searches.InvalidSearches...) {
		t.Run(s.SearchTerm, func(t *testing.T) {
			_, pc := newShop(t, fakestore.LayoutStandard)
			ctx := context.Background()
			search := NewSearchPage(pc)

			require.NoError(t, search.Search(ctx, s.SearchTerm))

			count, err := search.SearchResults(ctx)
			require.NoError(t, err)
			noResults, err := search.HasNoResultsMessage(ctx)
			require.NoError(t, err)

			if s.ExpectedResults {
				assert.Greater(t, count, 0)
				assert.False(t, noResults)
			} else {
				assert.Equal(t, 0, count)
				assert.True(t, noResults)
			}
		})
	}
}

func TestSearchPage_NoResults(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	search := NewSearchPage(pc)

	require.NoError(t, search.Search(ctx, "zzzznoresult"))

	noResults, err := search.HasNoResultsMessage(ctx)
	require.NoError(t, err)
	assert.True(t, noResults)

	msg, err := search.NoResultsMessage(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "No products were found"))

	count, err := search.SearchResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSearchPage_ProductTitles(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	search := NewSearchPage(pc)

	require.NoError(t, search.Search(ctx, "  apple  "))

	titles, err := search.ProductTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple MacBook Pro 13-inch", "Apple iPhone 16 128GB"}, titles)
}

func TestSearchPage_TooShortTerm(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	search := NewSearchPage(pc)

	require.NoError(t, search.Search(ctx, "a"))

	count, err := search.SearchResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	noResults, err := search.HasNoResultsMessage(ctx)
	require.NoError(t, err)
	assert.False(t, noResults)
}

func TestSearchPage_SubmitsWithEnterWithoutButton(t *testing.T) {
	cat, err := locator.LoadCatalog(strings.NewReader(`
search.button:
  - css: ".missing-search-button"
`))
	require.NoError(t, err)
	_, pc := newShop(t, fakestore.LayoutStandard, WithCatalog(cat))
	ctx := context.Background()
	search := NewSearchPage(pc)

	require.NoError(t, search.Search(ctx, "nikon"))

	count, err := search.SearchResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, events(pc, "press"), 1)
	assert.Empty(t, events(pc, "click"))
}

func TestSearchPage_AdvancedSearch(t *testing.T) {
	searches, err := fixtures.DefaultSearches()
	require.NoError(t, err)

	tests := []struct {
		filter   fixtures.AdvancedSearch
		expected int
	}{
		{searches.AdvancedSearches[0], 3},
		{searches.AdvancedSearches[1], 2},
		{fixtures.AdvancedSearch{SearchTerm: "apple", PriceTo: "1000"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.filter.SearchTerm, func(t *testing.T) {
			_, pc := newShop(t, fakestore.LayoutStandard)
			ctx := context.Background()
			search := NewSearchPage(pc)

			require.NoError(t, search.NavigateToAdvancedSearch(ctx))
			require.NoError(t, search.AdvancedSearch(ctx, tt.filter))

			count, err := search.SearchResults(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestSearchPage_AdvancedSearchWithoutFormFails(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()

	err := NewSearchPage(pc).AdvancedSearch(ctx, fixtures.AdvancedSearch{})

	var te *wait.TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "search.submit", te.Target)
	assert.Empty(t, events(pc, "click"))
}
