package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/pages"
)

// Journey tags
const (
	TagSmoke        = "smoke"
	TagLogin        = "login"
	TagSearch       = "search"
	TagCart         = "cart"
	TagCurrency     = "currency"
	TagNewsletter   = "newsletter"
	TagRegistration = "registration"
	TagWishlist     = "wishlist"
	TagNavigation   = "navigation"
)

// Smoke returns the built-in journeys, parameterised by fx
func Smoke(fx fixtures.Set) []Journey {
	return []Journey{
		{Name: "login-invalid", Tags: []string{TagSmoke, TagLogin}, Run: loginInvalid(fx.Users)},
		{Name: "search-valid", Tags: []string{TagSmoke, TagSearch}, Run: searchValid(fx.Searches)},
		{Name: "search-no-results", Tags: []string{TagSmoke, TagSearch}, Run: searchNoResults(fx.Searches)},
		{Name: "cart-add", Tags: []string{TagSmoke, TagCart}, Run: cartAdd},
		{Name: "currency-round-trip", Tags: []string{TagSmoke, TagCurrency}, Run: currencyRoundTrip},
		{Name: "newsletter-subscribe", Tags: []string{TagSmoke, TagNewsletter}, Run: newsletterSubscribe},
		{Name: "site-navigation", Tags: []string{TagSmoke, TagNavigation}, Run: siteNavigation},
		{Name: "registration", Tags: []string{TagRegistration}, Run: registration},
		{Name: "wishlist-add", Tags: []string{TagWishlist}, Run: wishlistAdd},
	}
}

func loginInvalid(users fixtures.Users) func(context.Context, *pages.Context) error {
	return func(ctx context.Context, pc *pages.Context) error {
		if len(users.InvalidUsers) == 0 {
			return fmt.Errorf("no invalid user fixtures")
		}
		login := pages.NewLoginPage(pc)
		if err := pc.Navigate(ctx, ""); err != nil {
			return err
		}
		if err := login.NavigateToLogin(ctx); err != nil {
			return fmt.Errorf("failed to open login: %w", err)
		}
		if err := login.Login(ctx, pages.CredentialsOf(users.InvalidUsers[0]), false); err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}

		in, err := login.IsLoggedIn(ctx)
		if err != nil {
			return err
		}
		if err := False("logged in with invalid credentials", in); err != nil {
			return err
		}
		msg, err := login.ErrorMessage(ctx)
		if err != nil {
			return err
		}
		return Contains("login error message", msg, "unsuccessful")
	}
}

func searchValid(searches fixtures.Searches) func(context.Context, *pages.Context) error {
	return func(ctx context.Context, pc *pages.Context) error {
		term, ok := firstSearch(searches.ValidSearches, true)
		if !ok {
			return fmt.Errorf("no valid search fixtures")
		}
		search := pages.NewSearchPage(pc)
		if err := pc.Navigate(ctx, ""); err != nil {
			return err
		}
		if err := search.Search(ctx, term); err != nil {
			return fmt.Errorf("failed to search %q: %w", term, err)
		}

		count, err := search.SearchResults(ctx)
		if err != nil {
			return err
		}
		return AtLeast(fmt.Sprintf("results for %q", term), 1, count)
	}
}

func searchNoResults(searches fixtures.Searches) func(context.Context, *pages.Context) error {
	return func(ctx context.Context, pc *pages.Context) error {
		term, ok := firstSearch(searches.InvalidSearches, false)
		if !ok {
			return fmt.Errorf("no invalid search fixtures")
		}
		search := pages.NewSearchPage(pc)
		if err := pc.Navigate(ctx, ""); err != nil {
			return err
		}
		if err := search.Search(ctx, term); err != nil {
			return fmt.Errorf("failed to search %q: %w", term, err)
		}

		none, err := search.HasNoResultsMessage(ctx)
		if err != nil {
			return err
		}
		if err := True("no-results message shown", none); err != nil {
			return err
		}
		count, err := search.SearchResults(ctx)
		if err != nil {
			return err
		}
		return Equal(fmt.Sprintf("results for %q", term), 0, count)
	}
}

// firstSearch returns the first term whose expectation matches
func firstSearch(in []fixtures.Search, expectResults bool) (string, bool) {
	for _, s := range in {
		if s.ExpectedResults == expectResults && s.SearchTerm != "" {
			return s.SearchTerm, true
		}
	}
	return "", false
}

func cartAdd(ctx context.Context, pc *pages.Context) error {
	cart := pages.NewCartPage(pc)
	if err := pc.Navigate(ctx, ""); err != nil {
		return err
	}
	if err := cart.AddProductToCart(ctx, pages.FirstSearchResult); err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}
	if err := cart.NavigateToCart(ctx); err != nil {
		return fmt.Errorf("failed to open cart: %w", err)
	}

	count, err := cart.CartItemCount(ctx)
	if err != nil {
		return err
	}
	if err := AtLeast("cart items", 1, count); err != nil {
		return err
	}

	// Quantity 0 empties the line without raising
	if err := cart.UpdateQuantity(ctx, 0, 0); err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	for range 2 {
		empty, err := cart.IsCartEmpty(ctx)
		if err != nil {
			return err
		}
		if err := True("cart empty after quantity 0", empty); err != nil {
			return err
		}
	}
	return nil
}

func currencyRoundTrip(ctx context.Context, pc *pages.Context) error {
	currency := pages.NewCurrencyPage(pc)
	if err := currency.NavigateToProductPage(ctx, ""); err != nil {
		return fmt.Errorf("failed to open product: %w", err)
	}

	before, err := currency.DisplayedPrices(ctx)
	if err != nil {
		return err
	}
	if err := AtLeast("displayed prices", 1, len(before)); err != nil {
		return err
	}

	if err := currency.ChangeCurrency(ctx, "2"); err != nil {
		return fmt.Errorf("failed to change currency: %w", err)
	}
	code, err := currency.CurrentCurrency(ctx)
	if err != nil {
		return err
	}
	if err := Equal("currency after switch", "2", code); err != nil {
		return err
	}
	after, err := currency.DisplayedPrices(ctx)
	if err != nil {
		return err
	}
	if len(after) > 0 {
		if err := True("price changed with currency", after[0] != before[0]); err != nil {
			return err
		}
	}

	if err := currency.ChangeCurrency(ctx, "1"); err != nil {
		return fmt.Errorf("failed to restore currency: %w", err)
	}
	code, err = currency.CurrentCurrency(ctx)
	if err != nil {
		return err
	}
	return Equal("currency after restore", "1", code)
}

func newsletterSubscribe(ctx context.Context, pc *pages.Context) error {
	newsletter := pages.NewNewsletterPage(pc)
	email := fixtures.RandomEmail()
	if err := True("generated email is well formed", pages.ValidateEmailFormat(email)); err != nil {
		return err
	}
	if err := newsletter.NavigateToNewsletterSection(ctx); err != nil {
		return fmt.Errorf("failed to open newsletter: %w", err)
	}

	visible, err := newsletter.IsNewsletterFormVisible(ctx)
	if err != nil {
		return err
	}
	if err := True("newsletter form visible", visible); err != nil {
		return err
	}
	if err := newsletter.SubscribeToNewsletter(ctx, email); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	msg, err := newsletter.NewsletterMessage(ctx)
	if err != nil {
		return err
	}
	return Contains("newsletter confirmation", msg, "thank you")
}

func siteNavigation(ctx context.Context, pc *pages.Context) error {
	nav := pages.NewNavigationPage(pc)
	elapsed, err := nav.MeasureLoad(ctx)
	if err != nil {
		return fmt.Errorf("failed to open home: %w", err)
	}
	if err := True(fmt.Sprintf("home loaded within %s (took %s)", pages.MaxLoadTime, elapsed), elapsed < pages.MaxLoadTime); err != nil {
		return err
	}

	title, err := nav.PageTitle(ctx)
	if err != nil {
		return err
	}
	if err := Contains("page title", title, "nopCommerce demo store"); err != nil {
		return err
	}
	header, err := nav.HeaderStatus(ctx)
	if err != nil {
		return err
	}
	if err := Equal("missing header elements", "", strings.Join(header.Missing(), ", ")); err != nil {
		return err
	}

	for _, c := range []struct {
		menu locator.Spec
		name string
	}{
		{pages.ComputersMenu, "Computers"},
		{pages.ElectronicsMenu, "Electronics"},
	} {
		heading, err := nav.OpenCategory(ctx, c.menu)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.name, err)
		}
		if err := Contains("category heading", heading, c.name); err != nil {
			return err
		}
	}

	if err := nav.GoBack(ctx); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	if err := nav.Reload(ctx); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	heading, err := nav.Heading(ctx)
	if err != nil {
		return err
	}
	if err := Contains("heading after back and reload", heading, "Computers"); err != nil {
		return err
	}

	if err := nav.NavigateTo(ctx, "invalid-page-that-does-not-exist"); err != nil {
		return err
	}
	notFound, err := nav.IsNotFoundPage(ctx)
	if err != nil {
		return err
	}
	if err := True("not found page for unknown URL", notFound); err != nil {
		return err
	}

	if err := nav.NavigateToHome(ctx); err != nil {
		return err
	}
	if err := nav.SetMobileViewport(ctx); err != nil {
		return fmt.Errorf("failed to resize viewport: %w", err)
	}
	mobile, err := nav.MobileLayoutShown(ctx)
	if err != nil {
		return err
	}
	if err := True("logo and search shown on mobile", mobile); err != nil {
		return err
	}

	tag, err := nav.TabFocus(ctx, 3)
	if err != nil {
		return fmt.Errorf("failed to tab through page: %w", err)
	}
	return True(fmt.Sprintf("focus on a link, input or button (got %q)", tag), pages.IsFocusable(tag))
}

func registration(ctx context.Context, pc *pages.Context) error {
	reg := pages.NewRegistrationPage(pc)
	if err := pc.Navigate(ctx, ""); err != nil {
		return err
	}
	if err := reg.NavigateToRegister(ctx); err != nil {
		return fmt.Errorf("failed to open registration: %w", err)
	}
	if err := reg.Register(ctx, fixtures.NewTestRegistration()); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	msg, err := reg.SuccessMessage(ctx)
	if err != nil {
		return err
	}
	return Contains("registration result", msg, "registration completed")
}

func wishlistAdd(ctx context.Context, pc *pages.Context) error {
	wishlist := pages.NewWishlistPage(pc)
	if err := pc.Navigate(ctx, ""); err != nil {
		return err
	}
	if err := wishlist.AddProductToWishlist(ctx, pages.FirstSearchResult); err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if err := wishlist.NavigateToWishlist(ctx); err != nil {
		return fmt.Errorf("failed to open wishlist: %w", err)
	}

	count, err := wishlist.WishlistItemCount(ctx)
	if err != nil {
		return err
	}
	return AtLeast("wishlist items", 1, count)
}
