package pages

import (
	"context"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/locator"
)

// WishlistPage is the wishlist and the add-to-wishlist control of product
// pages
type WishlistPage struct {
	pc *Context
}

// NewWishlistPage returns the wishlist page object over pc
func NewWishlistPage(pc *Context) *WishlistPage {
	return &WishlistPage{pc: pc}
}

// NavigateToWishlist follows the header wishlist link
func (w *WishlistPage) NavigateToWishlist(ctx context.Context) error {
	if _, err := w.pc.exec.Click(ctx, w.pc.Spec(wishlistLink)); err != nil {
		return err
	}
	return w.pc.WaitForNavigation(ctx)
}

// AddProductToWishlist opens the product product points at and adds it
func (w *WishlistPage) AddProductToWishlist(ctx context.Context, product locator.Spec) error {
	if _, err := w.pc.exec.Click(ctx, w.pc.Spec(product)); err != nil {
		return err
	}
	if err := w.pc.WaitForNavigation(ctx); err != nil {
		return err
	}
	out, err := w.pc.exec.Click(ctx, w.pc.Spec(wishlistAddButton))
	if err != nil || !out.OK() {
		return err
	}
	_, err = w.pc.exec.Present(ctx, w.pc.Spec(wishlistAdded), action.Within(w.pc.slow()))
	return err
}

// WishlistItemCount returns the number of wishlist rows
func (w *WishlistPage) WishlistItemCount(ctx context.Context) (int, error) {
	out, err := w.pc.exec.Count(ctx, w.pc.Spec(wishlistItems))
	return out.Value, err
}

// RemoveItemFromWishlist ticks the remove box of row index and updates
func (w *WishlistPage) RemoveItemFromWishlist(ctx context.Context, index int) error {
	if _, err := w.pc.exec.Check(ctx, w.pc.Spec(wishlistRemove), action.Nth(index)); err != nil {
		return err
	}
	if _, err := w.pc.exec.Click(ctx, w.pc.Spec(wishlistUpdate)); err != nil {
		return err
	}
	return w.pc.WaitForNavigation(ctx)
}

// MoveToCartFromWishlist selects row index and moves it to the cart. A
// store without a dedicated button gets the selection through update.
func (w *WishlistPage) MoveToCartFromWishlist(ctx context.Context, index int) error {
	if _, err := w.pc.exec.Check(ctx, w.pc.Spec(wishlistAddToCart), action.Nth(index)); err != nil {
		return err
	}
	_, err := w.pc.exec.Click(ctx, w.pc.Spec(wishlistMoveButton), action.WithFallback(action.Fallback{
		Name:   "update wishlist",
		Target: locator.Within(".wishlist-content", `[name="updatecart"]`),
	}))
	if err != nil {
		return err
	}
	return w.pc.WaitForNavigation(ctx)
}

// IsWishlistEmpty reports whether the empty wishlist message is shown
func (w *WishlistPage) IsWishlistEmpty(ctx context.Context) (bool, error) {
	out, err := w.pc.exec.Present(ctx, w.pc.Spec(wishlistEmpty))
	return out.Value, err
}

// ProductTitles returns the names of the wishlist products, trimmed
func (w *WishlistPage) ProductTitles(ctx context.Context) ([]string, error) {
	out, err := w.pc.exec.List(ctx, w.pc.Spec(wishlistTitles))
	return trimAll(out.Value), err
}
