package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/pages"
)

func names(js []Journey) []string {
	out := make([]string, 0, len(js))
	for _, j := range js {
		out = append(out, j.Name)
	}
	return out
}

func TestSelect(t *testing.T) {
	noop := func(context.Context, *pages.Context) error { return nil }
	all := []Journey{
		{Name: "login-invalid", Tags: []string{TagSmoke, TagLogin}, Run: noop},
		{Name: "search-valid", Tags: []string{TagSmoke, TagSearch}, Run: noop},
		{Name: "registration", Tags: []string{TagRegistration}, Run: noop},
	}

	tests := []struct {
		name    string
		names   []string
		tags    []string
		want    []string
		wantErr error
	}{
		{name: "no filter", want: []string{"login-invalid", "search-valid", "registration"}},
		{name: "by name", names: []string{"registration"}, want: []string{"registration"}},
		{name: "by tag", tags: []string{TagSmoke}, want: []string{"login-invalid", "search-valid"}},
		{name: "name or tag keeps order", names: []string{"registration"}, tags: []string{TagLogin}, want: []string{"login-invalid", "registration"}},
		{name: "unknown name", names: []string{"checkout"}, wantErr: ErrUnknownJourney},
		{name: "tag without match", tags: []string{"payment"}, wantErr: ErrNoJourneys},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(all, tt.names, tt.tags)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSmoke_Journeys(t *testing.T) {
	fx, err := fixtures.Defaults()
	require.NoError(t, err)

	journeys := Smoke(fx)
	seen := map[string]bool{}
	for _, j := range journeys {
		assert.NotEmpty(t, j.Name)
		assert.NotNil(t, j.Run, j.Name)
		assert.False(t, seen[j.Name], "duplicate journey %s", j.Name)
		seen[j.Name] = true
	}

	smoke, err := Select(journeys, nil, []string{TagSmoke})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"login-invalid", "search-valid", "search-no-results", "cart-add",
		"currency-round-trip", "newsletter-subscribe", "site-navigation",
	}, names(smoke))
}
