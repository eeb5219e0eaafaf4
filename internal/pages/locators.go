package pages

import (
	"sort"

	"github.com/adyen/ecommerce-e2e/internal/locator"
)

var registry = map[string]locator.Spec{}

// define builds a spec and registers it for Locators
func define(name string, candidates ...locator.Candidate) locator.Spec {
	s := locator.MustNew(name, candidates...)
	if _, dup := registry[name]; dup {
		panic("pages: duplicate locator " + name)
	}
	registry[name] = s
	return s
}

// Locators returns every page-object locator spec, sorted by name
func Locators() []locator.Spec {
	out := make([]locator.Spec, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Lookup returns the registered spec called name
func Lookup(name string) (locator.Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

var (
	loginLink       = define("login.link", locator.CSS(".ico-login"), locator.Containing("a", "Log in"))
	loginEmail      = define("login.email", locator.CSS("#Email"), locator.Within(".returning-wrapper", `input[type="email"]`))
	loginPassword   = define("login.password", locator.CSS("#Password"), locator.CSS(`input[name="Password"]`), locator.CSS(`input[type="password"]`))
	loginSubmit     = define("login.submit", locator.Containing(`button[type="submit"]`, "Log in"), locator.CSS(".login-button"), locator.Containing(`input[type="submit"]`, "Log in"))
	loginRememberMe = define("login.remember_me", locator.CSS("#RememberMe"), locator.CSS(`input[name="RememberMe"]`))
	loginAccount    = define("login.account_link", locator.CSS(".ico-account"), locator.Containing(".header-links a", "My account"))
	loginLogout     = define("login.logout_link", locator.CSS(".ico-logout"), locator.Containing(".header-links a", "Log out"))
	loginError      = define("login.error", locator.CSS(".message-error"), locator.CSS(".validation-summary-errors"))
	loginValidation = define("login.validation_summary", locator.CSS(".validation-summary-errors"), locator.CSS(".field-validation-error"))
)

var (
	cartLink       = define("cart.link", locator.CSS(".ico-cart"), locator.Containing(".header-links a", "Shopping cart"))
	cartAddButton  = define("cart.add_to_cart", locator.CSS(".add-to-cart-button"), locator.Containing("button", "Add to cart"), locator.CSS(`input[value="Add to cart"]`))
	cartAdded      = define("cart.added_notification", locator.CSS(".bar-notification.success"), locator.CSS("#bar-notification"))
	cartItems      = define("cart.items", locator.CSS(".cart-item-row"), locator.Within("table.cart", "tbody tr"))
	cartQuantity   = define("cart.quantity", locator.Within(".cart-item-row", ".qty-input"), locator.CSS(`input[name^="itemquantity"]`))
	cartUpdate     = define("cart.update", locator.CSS(`input[name="updatecart"]`), locator.CSS(`button[name="updatecart"]`), locator.CSS(".update-cart-button"))
	cartRemove     = define("cart.remove", locator.CSS(`input[name="removefromcart"]`), locator.Within(".remove-from-cart", "input"))
	cartTotal      = define("cart.total", locator.CSS(".cart-total-right .product-price"), locator.CSS(".order-total strong"))
	cartEmpty      = define("cart.empty", locator.CSS(".no-data"), locator.Containing(".page-body", "Your Shopping Cart is empty"))
	cartTerms      = define("cart.terms_of_service", locator.CSS("#termsofservice"), locator.Within(".terms-of-service", `input[type="checkbox"]`))
	cartCheckout   = define("cart.checkout", locator.CSS("#checkout"), locator.CSS(".checkout-button"), locator.Containing("button", "Checkout"))
	cartDiscount   = define("cart.discount_code", locator.CSS("#discountcouponcode"), locator.CSS(`input[name="discountcouponcode"]`))
	cartDiscountGo = define("cart.apply_discount", locator.CSS("#applydiscountcouponcode"), locator.Containing(".coupon-box button", "Apply coupon"))
	cartCouponMsg  = define("cart.discount_message", locator.Within(".coupon-box", ".message-success, .message-failure"), locator.CSS(".coupon-box .message"))
	cartGiftCard   = define("cart.gift_card_code", locator.CSS("#giftcardcouponcode"), locator.CSS(`input[name="giftcardcouponcode"]`))
	cartGiftCardGo = define("cart.apply_gift_card", locator.CSS("#applygiftcardcouponcode"), locator.Containing(".giftcard-box button", "Add gift card"))
	cartGiftMsg    = define("cart.gift_card_message", locator.Within(".giftcard-box", ".message-success, .message-failure"), locator.CSS(".giftcard-box .message"))
	cartCountry    = define("cart.country", locator.CSS("#CountryId"), locator.CSS(`select[name="CountryId"]`))
	cartState      = define("cart.state", locator.CSS("#StateProvinceId"), locator.CSS(`select[name="StateProvinceId"]`))
	cartZip        = define("cart.zip", locator.CSS("#ZipPostalCode"), locator.CSS(`input[name="ZipPostalCode"]`))
	cartEstimate   = define("cart.estimate_shipping", locator.CSS(".estimate-shipping-button"), locator.Containing("button", "Estimate shipping"))
	cartShipping   = define("cart.shipping_options", locator.CSS(".shipping-options .shipping-option-name"), locator.CSS(".shipping-option"))
)

var (
	searchBox       = define("search.box", locator.CSS("#small-searchterms"), locator.Within(".search-box", `input[type="text"]`), locator.CSS(`input[name="q"]`))
	searchButton    = define("search.button", locator.CSS(".search-box-button"), locator.Containing(".search-box button", "Search"))
	searchResults   = define("search.results", locator.CSS(".product-item"), locator.CSS(".item-box"))
	searchTitles    = define("search.product_titles", locator.CSS(".product-title a"), locator.Within(".product-item", "h2 a"))
	searchNoResults = define("search.no_results", locator.CSS(".no-result"), locator.Containing(".search-results", "No products were found"))
	searchAdvToggle = define("search.advanced_toggle", locator.CSS("#advs"), locator.CSS(`input[name="advs"]`))
	searchAdvLink   = define("search.advanced_link", locator.CSS("a.advanced-search"), locator.Containing("a", "Advanced search"))
	searchTerm      = define("search.term", locator.CSS("#q"), locator.Within(".search-page", `input[name="q"]`), locator.CSS("#small-searchterms"))
	searchCategory  = define("search.category", locator.CSS("#cid"), locator.CSS(`select[name="cid"]`))
	searchMaker     = define("search.manufacturer", locator.CSS("#mid"), locator.CSS(`select[name="mid"]`))
	searchPriceFrom = define("search.price_from", locator.CSS("#pf"), locator.CSS(`input[name="pf"]`))
	searchPriceTo   = define("search.price_to", locator.CSS("#pt"), locator.CSS(`input[name="pt"]`))
	searchInDesc    = define("search.in_descriptions", locator.CSS("#sid"), locator.CSS(`input[name="sid"]`))
	searchSubmit    = define("search.submit", locator.CSS(`input[value="Search"]`), locator.Within(".search-input", ".search-button"), locator.Containing(".search-input button", "Search"))

	// FirstSearchResult is the product link of the first result or product tile
	FirstSearchResult = define("search.first_result", locator.Within(".product-item", ".product-title a"), locator.Within(".item-box", "h2 a"))
)

var (
	regLink            = define("registration.link", locator.CSS(".ico-register"), locator.Containing(".header-links a", "Register"))
	regGenderMale      = define("registration.gender_male", locator.CSS("#gender-male"), locator.CSS(`input[name="Gender"][value="M"]`))
	regGenderFemale    = define("registration.gender_female", locator.CSS("#gender-female"), locator.CSS(`input[name="Gender"][value="F"]`))
	regFirstName       = define("registration.first_name", locator.CSS("#FirstName"), locator.CSS(`input[name="FirstName"]`))
	regLastName        = define("registration.last_name", locator.CSS("#LastName"), locator.CSS(`input[name="LastName"]`))
	regDay             = define("registration.birth_day", locator.CSS(`select[name="DateOfBirthDay"]`))
	regMonth           = define("registration.birth_month", locator.CSS(`select[name="DateOfBirthMonth"]`))
	regYear            = define("registration.birth_year", locator.CSS(`select[name="DateOfBirthYear"]`))
	regEmail           = define("registration.email", locator.CSS("#Email"), locator.Within(".registration-page", `input[type="email"]`))
	regCompany         = define("registration.company", locator.CSS("#Company"), locator.CSS(`input[name="Company"]`))
	regNewsletter      = define("registration.newsletter", locator.CSS("#Newsletter"), locator.CSS(`input[name="Newsletter"]`))
	regPassword        = define("registration.password", locator.CSS("#Password"), locator.CSS(`input[name="Password"]`))
	regConfirmPassword = define("registration.confirm_password", locator.CSS("#ConfirmPassword"), locator.CSS(`input[name="ConfirmPassword"]`))
	regSubmit          = define("registration.submit", locator.CSS("#register-button"), locator.Containing(".registration-page button", "Register"))
	regSuccess         = define("registration.result", locator.CSS(".result"), locator.Containing(".page-body", "Your registration completed"))
	regErrors          = define("registration.errors", locator.CSS(".field-validation-error, .validation-summary-errors li"), locator.CSS(".message-error"))
	regContinue        = define("registration.continue", locator.CSS(".register-continue-button"), locator.Containing("a", "Continue"))
)

var (
	wishlistLink       = define("wishlist.link", locator.CSS(".ico-wishlist"), locator.Containing(".header-links a", "Wishlist"))
	wishlistAddButton  = define("wishlist.add_to_wishlist", locator.CSS(".add-to-wishlist-button"), locator.Containing("button", "Add to wishlist"))
	wishlistAdded      = define("wishlist.added_notification", locator.CSS(".bar-notification.success"), locator.CSS("#bar-notification"))
	wishlistItems      = define("wishlist.items", locator.CSS(".wishlist-item"), locator.Within(".wishlist-content", "tbody tr"))
	wishlistRemove     = define("wishlist.remove", locator.CSS(".remove-from-wishlist"), locator.Within(".wishlist-content", `input[name="removefromcart"]`))
	wishlistUpdate     = define("wishlist.update", locator.CSS(`input[name="updatecart"]`), locator.CSS(`button[name="updatecart"]`), locator.CSS(".update-wishlist-button"))
	wishlistAddToCart  = define("wishlist.add_to_cart_select", locator.Within(".wishlist-content", `input[name="addtocart"]`), locator.Within(".add-to-cart", `input[type="checkbox"]`))
	wishlistMoveButton = define("wishlist.add_to_cart", locator.CSS(".wishlist-add-to-cart-button"), locator.CSS(`button[name="addtocartbutton"]`))
	wishlistEmpty      = define("wishlist.empty", locator.CSS(".no-data"), locator.Containing(".page-body", "The wishlist is empty"))
	wishlistTitles     = define("wishlist.product_titles", locator.CSS(".product-name"), locator.Within(".wishlist-content", ".product a"))
)

var (
	currencySelector = define("currency.selector", locator.CSS("#customerCurrency"), locator.CSS(`select[name="customerCurrency"]`), locator.Within(".currency-selector", "select"))
	currencyPrices   = define("currency.prices", locator.CSS(".price"), locator.CSS(".product-price"), locator.CSS(".actual-price"))
)

// footerEmailInput is any footer email field other than the dedicated
// newsletter one, which may be rendered hidden
var footerEmailInput = locator.Within(".footer", `input[type="email"]:not(#newsletter-email)`)

var (
	newsletterInput       = define("newsletter.email", locator.CSS("#newsletter-email"), locator.Within(".footer", `input[placeholder*="email"]`), locator.Within(".footer", `input[type="email"]`))
	newsletterButton      = define("newsletter.subscribe", locator.CSS("#newsletter-subscribe-button"), locator.Containing(".footer button", "Subscribe"), locator.Containing(`.footer input[type="submit"]`, "Subscribe"))
	newsletterForm        = define("newsletter.form", locator.CSS(".newsletter"), locator.Within(".footer", `input[type="email"]`))
	newsletterMessage     = define("newsletter.message", locator.CSS(".newsletter-result-block"), locator.CSS(".message-error"), locator.CSS(".notification, .alert, .message"))
	newsletterUnsubLink   = define("newsletter.unsubscribe_link", locator.CSS(".newsletter-unsubscribe"), locator.Containing(".footer a", "Unsubscribe"))
	newsletterUnsubEmail  = define("newsletter.unsubscribe_email", locator.CSS("#unsubscribe-email"), locator.Within(".page-body", `input[type="email"]`))
	newsletterUnsubButton = define("newsletter.unsubscribe", locator.Containing(".page-body button", "Unsubscribe"), locator.Containing(`.page-body input[type="submit"]`, "Unsubscribe"))
)

var (
	navTitle     = define("navigation.title", locator.CSS("title"), locator.CSS("head title"))
	navLogo      = define("navigation.logo", locator.CSS(".header-logo"), locator.Within(".header", `a[href="/"] img`))
	navMenu      = define("navigation.menu", locator.CSS(".top-menu.notmobile"), locator.Within(".header-menu", "ul"))
	navSearchBox = define("navigation.search_box", locator.CSS(".search-box"), locator.CSS(".store-search-box"))
	navHeading   = define("navigation.heading", locator.Within(".page-title", "h1"), locator.CSS("h1"))
	navNotFound  = define("navigation.not_found", locator.Containing("h1", "not found"), locator.Containing(".page-body", "was not found"), locator.Containing("title", "not found"))

	// ComputersMenu and ElectronicsMenu are top menu category links
	ComputersMenu   = define("navigation.menu_computers", locator.Containing(".top-menu.notmobile a", "Computers"), locator.Containing(".header-menu a", "Computers"))
	ElectronicsMenu = define("navigation.menu_electronics", locator.Containing(".top-menu.notmobile a", "Electronics"), locator.Containing(".header-menu a", "Electronics"))
)
