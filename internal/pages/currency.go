package pages

import (
	"context"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// DefaultProductSlug is the product page currency checks open
const DefaultProductSlug = "apple-macbook-pro-13-inch"

// CurrencyPage is the header currency selector and the prices it affects
type CurrencyPage struct {
	pc *Context
}

// NewCurrencyPage returns the currency selector page object over pc
func NewCurrencyPage(pc *Context) *CurrencyPage {
	return &CurrencyPage{pc: pc}
}

// ChangeCurrency selects the currency option whose value is code
func (c *CurrencyPage) ChangeCurrency(ctx context.Context, code string) error {
	if _, err := c.pc.exec.Select(ctx, c.pc.Spec(currencySelector), code); err != nil {
		return err
	}
	return c.pc.WaitForNavigation(ctx)
}

// CurrentCurrency returns the selected option value, or ""
func (c *CurrencyPage) CurrentCurrency(ctx context.Context) (string, error) {
	out, err := c.pc.exec.Value(ctx, c.pc.Spec(currencySelector))
	return out.Value, err
}

// DisplayedPrices returns every price on the page, trimmed
func (c *CurrencyPage) DisplayedPrices(ctx context.Context) ([]string, error) {
	out, err := c.pc.exec.List(ctx, c.pc.Spec(currencyPrices), action.Until(wait.Attached))
	return trimAll(out.Value), err
}

// NavigateToProductPage opens the product page at slug, DefaultProductSlug
// when empty
func (c *CurrencyPage) NavigateToProductPage(ctx context.Context, slug string) error {
	if slug == "" {
		slug = DefaultProductSlug
	}
	if err := c.pc.Navigate(ctx, slug); err != nil {
		return err
	}
	return c.pc.WaitForNavigation(ctx)
}
