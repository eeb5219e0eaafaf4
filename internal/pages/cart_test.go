package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/fakestore"
)

func addFirstProduct(t *testing.T, pc *Context) *CartPage {
	t.Helper()
	ctx := context.Background()
	cart := NewCartPage(pc)
	require.NoError(t, cart.AddProductToCart(ctx, FirstSearchResult))
	require.NoError(t, cart.NavigateToCart(ctx))
	return cart
}

func TestCartPage_AddProduct(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := addFirstProduct(t, pc)

	count, err := cart.CartItemCount(ctx)
	require.NoError(t, err)
	assert.Greater(t, count, 0)

	qty, err := cart.ItemQuantity(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "1", qty)

	total, err := cart.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$1,200.00", total)

	empty, err := cart.IsCartEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestCartPage_UpdateQuantity(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := addFirstProduct(t, pc)

	require.NoError(t, cart.UpdateQuantity(ctx, 0, 3))
	total, err := cart.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$3,600.00", total)

	require.NoError(t, cart.UpdateQuantity(ctx, 0, 0))
	empty, err := cart.IsCartEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCartPage_RemoveItem(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := addFirstProduct(t, pc)

	require.NoError(t, cart.RemoveItem(ctx, 0))
	count, err := cart.CartItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCartPage_IsCartEmptyIsIdempotent(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := NewCartPage(pc)
	require.NoError(t, cart.NavigateToCart(ctx))

	first, err := cart.IsCartEmpty(ctx)
	require.NoError(t, err)
	second, err := cart.IsCartEmpty(ctx)
	require.NoError(t, err)

	assert.True(t, first)
	assert.Equal(t, first, second)
	assert.Len(t, events(pc, "click"), 1)
}

func TestCartPage_Coupons(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := addFirstProduct(t, pc)

	msg, err := cart.ApplyDiscountCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Equal(t, fakestore.MsgCouponRejected, msg)

	msg, err = cart.ApplyDiscountCode(ctx, fakestore.DiscountCode)
	require.NoError(t, err)
	assert.Equal(t, fakestore.MsgCouponApplied, msg)

	total, err := cart.TotalPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$1,080.00", total)

	msg, err = cart.ApplyGiftCard(ctx, "GIFT")
	require.NoError(t, err)
	assert.Equal(t, fakestore.MsgCouponRejected, msg)
}

func TestCartPage_EstimateShipping(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := addFirstProduct(t, pc)

	options, err := cart.EstimateShipping(ctx, ShippingEstimate{Country: "1", State: "40", Zip: "10001"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ground ($0.00)", "Next Day Air ($0.00)", "2nd Day Air ($0.00)"}, options)

	options, err = cart.EstimateShipping(ctx, ShippingEstimate{Country: "1"})
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestCartPage_ProceedToCheckout(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	cart := addFirstProduct(t, pc)

	require.NoError(t, cart.ProceedToCheckout(ctx))
	assert.Contains(t, pc.Page().URL(), "/login/checkoutasguest")
}
