package pages

import (
	"context"
	"strings"
	"time"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Mobile viewport used for layout checks
const (
	MobileWidth  = 375
	MobileHeight = 667
)

// MaxLoadTime is the longest acceptable home page load
const MaxLoadTime = 10 * time.Second

// HeaderStatus records which header elements are shown
type HeaderStatus struct {
	Logo     bool
	Menu     bool
	Search   bool
	Register bool
	Login    bool
	Cart     bool
	Wishlist bool
}

// Missing returns the names of the header elements that are not shown
func (h HeaderStatus) Missing() []string {
	var out []string
	for _, e := range []struct {
		name  string
		shown bool
	}{
		{"logo", h.Logo},
		{"menu", h.Menu},
		{"search", h.Search},
		{"register", h.Register},
		{"login", h.Login},
		{"cart", h.Cart},
		{"wishlist", h.Wishlist},
	} {
		if !e.shown {
			out = append(out, e.name)
		}
	}
	return out
}

// IsFocusable reports whether a tag name is one keyboard navigation is
// expected to land on
func IsFocusable(tag string) bool {
	switch strings.ToLower(tag) {
	case "a", "input", "button":
		return true
	}
	return false
}

// NavigationPage is the site chrome: header, top menu, history and
// viewport
type NavigationPage struct {
	pc *Context
}

// NewNavigationPage returns the navigation page object over pc
func NewNavigationPage(pc *Context) *NavigationPage {
	return &NavigationPage{pc: pc}
}

// NavigateToHome opens the home page and waits for it to settle
func (n *NavigationPage) NavigateToHome(ctx context.Context) error {
	if err := n.pc.Navigate(ctx, ""); err != nil {
		return err
	}
	return n.pc.WaitForNavigation(ctx)
}

// NavigateTo opens path relative to the base URL
func (n *NavigationPage) NavigateTo(ctx context.Context, path string) error {
	if err := n.pc.Navigate(ctx, path); err != nil {
		return err
	}
	return n.pc.WaitForNavigation(ctx)
}

// MeasureLoad opens the home page and returns how long it took to settle
func (n *NavigationPage) MeasureLoad(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := n.NavigateToHome(ctx); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)
	n.pc.log.WithField("elapsed", elapsed).Info("home page loaded")
	return elapsed, nil
}

// PageTitle returns the document title, or ""
func (n *NavigationPage) PageTitle(ctx context.Context) (string, error) {
	out, err := n.pc.exec.Text(ctx, n.pc.Spec(navTitle), action.Until(wait.Attached))
	return strings.TrimSpace(out.Value), err
}

// HeaderStatus checks every header element in turn
func (n *NavigationPage) HeaderStatus(ctx context.Context) (HeaderStatus, error) {
	var h HeaderStatus
	for _, c := range []struct {
		spec  locator.Spec
		shown *bool
	}{
		{navLogo, &h.Logo},
		{navMenu, &h.Menu},
		{searchBox, &h.Search},
		{regLink, &h.Register},
		{loginLink, &h.Login},
		{cartLink, &h.Cart},
		{wishlistLink, &h.Wishlist},
	} {
		out, err := n.pc.exec.Present(ctx, n.pc.Spec(c.spec))
		if err != nil {
			return h, err
		}
		*c.shown = out.Value
	}
	return h, nil
}

// OpenCategory follows a top menu link and returns the heading of the
// page it leads to. A missing link fails with *wait.TimeoutError.
func (n *NavigationPage) OpenCategory(ctx context.Context, menu locator.Spec) (string, error) {
	if _, err := n.pc.exec.Click(ctx, n.pc.Spec(menu), action.Assertive()); err != nil {
		return "", err
	}
	if err := n.pc.WaitForNavigation(ctx); err != nil {
		return "", err
	}
	return n.Heading(ctx)
}

// Heading returns the page heading, or ""
func (n *NavigationPage) Heading(ctx context.Context) (string, error) {
	out, err := n.pc.exec.Text(ctx, n.pc.Spec(navHeading))
	return strings.TrimSpace(out.Value), err
}

// IsNotFoundPage reports whether the store shows its "page not found" page
func (n *NavigationPage) IsNotFoundPage(ctx context.Context) (bool, error) {
	out, err := n.pc.exec.Present(ctx, n.pc.Spec(navNotFound), action.Until(wait.Attached))
	return out.Value, err
}

// SetMobileViewport resizes the page to a phone screen and reloads it
func (n *NavigationPage) SetMobileViewport(ctx context.Context) error {
	if err := n.pc.SetViewport(ctx, MobileWidth, MobileHeight); err != nil {
		return err
	}
	return n.Reload(ctx)
}

// MobileLayoutShown reports whether the logo and search box are shown
func (n *NavigationPage) MobileLayoutShown(ctx context.Context) (bool, error) {
	for _, spec := range []locator.Spec{navLogo, navSearchBox} {
		out, err := n.pc.exec.Present(ctx, n.pc.Spec(spec))
		if err != nil || !out.Value {
			return false, err
		}
	}
	return true, nil
}

// TabFocus presses Tab times times and returns the tag name of the
// element focus lands on
func (n *NavigationPage) TabFocus(ctx context.Context, times int) (string, error) {
	for i := 0; i < times; i++ {
		if err := n.pc.Press(ctx, driver.KeyTab); err != nil {
			return "", err
		}
	}
	return n.pc.FocusedElement(ctx)
}

// GoBack returns to the previous page and waits for it to settle
func (n *NavigationPage) GoBack(ctx context.Context) error {
	if err := n.pc.GoBack(ctx); err != nil {
		return err
	}
	return n.pc.WaitForNavigation(ctx)
}

// Reload reloads the current page and waits for it to settle
func (n *NavigationPage) Reload(ctx context.Context) error {
	if err := n.pc.Reload(ctx); err != nil {
		return err
	}
	return n.pc.WaitForNavigation(ctx)
}

// CurrentURL returns the URL of the page
func (n *NavigationPage) CurrentURL() string {
	return n.pc.page.URL()
}
