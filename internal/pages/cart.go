package pages

import (
	"context"
	"strconv"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// ShippingEstimate is the input of the estimate shipping form. State is
// optional.
type ShippingEstimate struct {
	Country string
	State   string
	Zip     string
}

// CartPage is the shopping cart and the add-to-cart controls of product pages
type CartPage struct {
	pc *Context
}

// NewCartPage returns the cart page object over pc
func NewCartPage(pc *Context) *CartPage {
	return &CartPage{pc: pc}
}

// NavigateToCart follows the header cart link
func (c *CartPage) NavigateToCart(ctx context.Context) error {
	if _, err := c.pc.exec.Click(ctx, c.pc.Spec(cartLink)); err != nil {
		return err
	}
	return c.pc.WaitForNavigation(ctx)
}

// AddProductToCart opens the product product points at and adds it
func (c *CartPage) AddProductToCart(ctx context.Context, product locator.Spec) error {
	if _, err := c.pc.exec.Click(ctx, c.pc.Spec(product)); err != nil {
		return err
	}
	if err := c.pc.WaitForNavigation(ctx); err != nil {
		return err
	}
	return c.AddToCart(ctx)
}

// AddToCart adds the product of the current product page and waits for
// the confirmation bar
func (c *CartPage) AddToCart(ctx context.Context) error {
	out, err := c.pc.exec.Click(ctx, c.pc.Spec(cartAddButton))
	if err != nil || !out.OK() {
		return err
	}
	_, err = c.pc.exec.Present(ctx, c.pc.Spec(cartAdded), action.Within(c.pc.slow()))
	return err
}

// CartItemCount returns the number of cart rows; 0 when there are none
func (c *CartPage) CartItemCount(ctx context.Context) (int, error) {
	out, err := c.pc.exec.Count(ctx, c.pc.Spec(cartItems))
	return out.Value, err
}

// ItemQuantity returns the quantity field of row index
func (c *CartPage) ItemQuantity(ctx context.Context, index int) (string, error) {
	out, err := c.pc.exec.Value(ctx, c.pc.Spec(cartQuantity), action.Nth(index))
	return out.Value, err
}

// UpdateQuantity sets the quantity of row index and submits the cart.
// A quantity of 0 removes the row.
func (c *CartPage) UpdateQuantity(ctx context.Context, index, qty int) error {
	if _, err := c.pc.exec.Fill(ctx, c.pc.Spec(cartQuantity), strconv.Itoa(qty), action.Nth(index)); err != nil {
		return err
	}
	return c.submit(ctx)
}

// RemoveItem ticks the remove box of row index and submits the cart
func (c *CartPage) RemoveItem(ctx context.Context, index int) error {
	if _, err := c.pc.exec.Check(ctx, c.pc.Spec(cartRemove), action.Nth(index)); err != nil {
		return err
	}
	return c.submit(ctx)
}

func (c *CartPage) submit(ctx context.Context) error {
	if _, err := c.pc.exec.Click(ctx, c.pc.Spec(cartUpdate)); err != nil {
		return err
	}
	return c.pc.WaitForNavigation(ctx)
}

// TotalPrice returns the order total, trimmed; "" if it is not shown
func (c *CartPage) TotalPrice(ctx context.Context) (string, error) {
	out, err := c.pc.exec.Text(ctx, c.pc.Spec(cartTotal), action.Last(), action.Until(wait.Attached))
	return strings.TrimSpace(out.Value), err
}

// IsCartEmpty reports whether the empty cart message is shown. It only
// reads the page, so repeated calls agree.
func (c *CartPage) IsCartEmpty(ctx context.Context) (bool, error) {
	out, err := c.pc.exec.Present(ctx, c.pc.Spec(cartEmpty))
	return out.Value, err
}

// ProceedToCheckout accepts the terms of service, when offered, and
// clicks checkout
func (c *CartPage) ProceedToCheckout(ctx context.Context) error {
	if _, err := c.pc.exec.Check(ctx, c.pc.Spec(cartTerms), action.Within(c.pc.probeTimeout/2)); err != nil {
		return err
	}
	if _, err := c.pc.exec.Click(ctx, c.pc.Spec(cartCheckout)); err != nil {
		return err
	}
	return c.pc.WaitForNavigation(ctx)
}

// ApplyDiscountCode submits code and returns the coupon message
func (c *CartPage) ApplyDiscountCode(ctx context.Context, code string) (string, error) {
	return c.applyCode(ctx, cartDiscount, cartDiscountGo, cartCouponMsg, code)
}

// ApplyGiftCard submits code and returns the gift card message
func (c *CartPage) ApplyGiftCard(ctx context.Context, code string) (string, error) {
	return c.applyCode(ctx, cartGiftCard, cartGiftCardGo, cartGiftMsg, code)
}

func (c *CartPage) applyCode(ctx context.Context, input, apply, message locator.Spec, code string) (string, error) {
	exec := c.pc.exec
	if _, err := exec.Fill(ctx, c.pc.Spec(input), code); err != nil {
		return "", err
	}
	if _, err := exec.Click(ctx, c.pc.Spec(apply)); err != nil {
		return "", err
	}
	if err := c.pc.WaitForNavigation(ctx); err != nil {
		return "", err
	}
	out, err := exec.Text(ctx, c.pc.Spec(message))
	return strings.TrimSpace(out.Value), err
}

// EstimateShipping fills the estimate form and returns the offered
// shipping options
func (c *CartPage) EstimateShipping(ctx context.Context, est ShippingEstimate) ([]string, error) {
	exec := c.pc.exec
	if _, err := exec.Select(ctx, c.pc.Spec(cartCountry), est.Country); err != nil {
		return nil, err
	}
	if est.State != "" {
		if _, err := exec.Select(ctx, c.pc.Spec(cartState), est.State); err != nil {
			return nil, err
		}
	}
	if _, err := exec.Fill(ctx, c.pc.Spec(cartZip), est.Zip); err != nil {
		return nil, err
	}
	if _, err := exec.Click(ctx, c.pc.Spec(cartEstimate)); err != nil {
		return nil, err
	}
	if err := c.pc.WaitForNavigation(ctx); err != nil {
		return nil, err
	}
	out, err := exec.List(ctx, c.pc.Spec(cartShipping), action.Within(c.pc.slow()))
	return trimAll(out.Value), err
}
