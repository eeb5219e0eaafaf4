package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/driver/htmldriver"
	"github.com/adyen/ecommerce-e2e/internal/fakestore"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

func TestHeaderStatus_Missing(t *testing.T) {
	tests := []struct {
		status   HeaderStatus
		expected []string
	}{
		{HeaderStatus{true, true, true, true, true, true, true}, nil},
		{HeaderStatus{Logo: true, Search: true, Cart: true}, []string{"menu", "register", "login", "wishlist"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.Missing())
	}
}

func TestIsFocusable(t *testing.T) {
	tests := []struct {
		tag      string
		expected bool
	}{
		{"a", true},
		{"INPUT", true},
		{"button", true},
		{"select", false},
		{"body", false},
	}

	for _, tt := range tests {
		if got := IsFocusable(tt.tag); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.tag, tt.expected, got)
		}
	}
}

func TestNavigationPage_Header(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	nav := NewNavigationPage(pc)

	elapsed, err := nav.MeasureLoad(ctx)
	require.NoError(t, err)
	assert.Less(t, elapsed, MaxLoadTime)

	title, err := nav.PageTitle(ctx)
	require.NoError(t, err)
	assert.Contains(t, title, "nopCommerce demo store")

	header, err := nav.HeaderStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, header.Missing())
}

func TestNavigationPage_CategoriesAndHistory(t *testing.T) {
	store, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	nav := NewNavigationPage(pc)

	heading, err := nav.OpenCategory(ctx, ComputersMenu)
	require.NoError(t, err)
	assert.Equal(t, "Computers", heading)

	heading, err = nav.OpenCategory(ctx, ElectronicsMenu)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", heading)
	assert.Equal(t, store.BaseURL()+"electronics", nav.CurrentURL())

	require.NoError(t, nav.GoBack(ctx))
	assert.Equal(t, store.BaseURL()+"computers", nav.CurrentURL())

	require.NoError(t, nav.Reload(ctx))
	heading, err = nav.Heading(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Computers", heading)
}

func TestNavigationPage_MissingCategoryFails(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	nav := NewNavigationPage(pc)
	require.NoError(t, nav.NavigateTo(ctx, "no-such-page"))

	_, err := nav.OpenCategory(ctx, ComputersMenu)
	var te *wait.TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "navigation.menu_computers", te.Target)
}

func TestNavigationPage_NotFound(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	nav := NewNavigationPage(pc)

	notFound, err := nav.IsNotFoundPage(ctx)
	require.NoError(t, err)
	assert.False(t, notFound)

	require.NoError(t, nav.NavigateTo(ctx, "invalid-page-that-does-not-exist"))
	notFound, err = nav.IsNotFoundPage(ctx)
	require.NoError(t, err)
	assert.True(t, notFound)
}

func TestNavigationPage_MobileAndKeyboard(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	nav := NewNavigationPage(pc)

	require.NoError(t, nav.SetMobileViewport(ctx))
	w, h := pc.Page().(*htmldriver.Page).Viewport()
	assert.Equal(t, MobileWidth, w)
	assert.Equal(t, MobileHeight, h)

	shown, err := nav.MobileLayoutShown(ctx)
	require.NoError(t, err)
	assert.True(t, shown)

	tag, err := nav.TabFocus(ctx, 3)
	require.NoError(t, err)
	assert.True(t, IsFocusable(tag), "focused %q", tag)
	assert.Len(t, events(pc, "press"), 3)
}

func TestContext_PageHelpersOnClosedPage(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	require.NoError(t, pc.Page().Close())

	for name, call := range map[string]func() error{
		"press":    func() error { return pc.Press(ctx, "Tab") },
		"viewport": func() error { return pc.SetViewport(ctx, MobileWidth, MobileHeight) },
		"back":     func() error { return pc.GoBack(ctx) },
		"reload":   func() error { return pc.Reload(ctx) },
		"focus": func() error {
			_, err := pc.FocusedElement(ctx)
			return err
		},
	} {
		var fault *action.DriverFault
		assert.True(t, errors.As(call(), &fault), name)
	}
}
