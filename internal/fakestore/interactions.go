package fakestore

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/driver/htmldriver"
)

func value(doc *goquery.Document, selector string) string {
	return doc.Find(selector).First().AttrOr("value", "")
}

func checked(s *goquery.Selection) bool {
	_, ok := s.Attr("checked")
	return ok
}

func selected(doc *goquery.Document, selector string) string {
	opt := doc.Find(selector).First().Find("option[selected]").First()
	if opt.Length() == 0 {
		return ""
	}
	return opt.AttrOr("value", strings.TrimSpace(opt.Text()))
}

// update mutates the shopper of p under the store lock, then loads the URL
// fn returns, if any
func (s *Store) update(p *htmldriver.Page, fn func(sh *shopper, doc *goquery.Document) string) error {
	s.mu.Lock()
	next := fn(s.shopperFor(p), p.Document())
	s.mu.Unlock()
	if next == "" {
		return nil
	}
	return p.Load(next)
}

func (s *Store) interactions() {
	s.site.
		OnClick(".search-box-button", s.quickSearch).
		OnClick(".search-button", s.advancedSearch).
		OnChange("#advs", func(p *htmldriver.Page, _ *goquery.Selection) error {
			p.Document().Find(".advanced-search").RemoveAttr("style")
			return nil
		}).
		OnClick(".login-button", s.login).
		OnClick("#register-button", s.register).
		OnClick(".register-button", func(p *htmldriver.Page, _ *goquery.Selection) error {
			return p.Load("/register")
		}).
		OnClick(".checkout-as-guest-button", func(p *htmldriver.Page, _ *goquery.Selection) error {
			return p.Load("/onepagecheckout")
		}).
		OnClick(".add-to-cart-button", s.addToCart).
		OnClick(".add-to-wishlist-button", s.addToWishlist).
		OnClick(".update-cart-button", s.updateCart).
		OnClick("#applydiscountcouponcode", s.applyDiscount).
		OnClick("#applygiftcardcouponcode", s.applyGiftCard).
		OnClick(".estimate-shipping-button", s.estimateShipping).
		OnClick("#checkout", s.checkout).
		OnChange("#customerCurrency", s.changeCurrency).
		OnClick(".update-wishlist-button", s.updateWishlist).
		OnClick(".wishlist-add-to-cart-button", s.wishlistToCart).
		OnClick("#newsletter-subscribe-button", s.subscribeFrom("#newsletter-email")).
		OnClick(".signup-button", s.subscribeFrom(`.newsletter-alt input[type="email"]`)).
		OnClick(".unsubscribe-button", s.unsubscribe).
		OnKey(driver.KeyEnter, s.enter)
}

func (s *Store) enter(p *htmldriver.Page, target *goquery.Selection) error {
	switch {
	case target.Is("#small-searchterms"):
		return s.quickSearch(p, target)
	case target.Is("#q"):
		return s.advancedSearch(p, target)
	case target.Is(`.footer input[type="email"]`):
		s.subscribe(p, target.AttrOr("value", ""))
		return nil
	case target.Is("#Email, #Password"):
		return s.login(p, target)
	}
	return nil
}

func (s *Store) quickSearch(p *htmldriver.Page, _ *goquery.Selection) error {
	return p.Load("/search?q=" + url.QueryEscape(value(p.Document(), "#small-searchterms")))
}

func (s *Store) advancedSearch(p *htmldriver.Page, _ *goquery.Selection) error {
	doc := p.Document()
	q := url.Values{}
	term := value(doc, "#q")
	if term == "" {
		term = value(doc, "#small-searchterms")
	}
	q.Set("q", term)
	if checked(doc.Find("#advs")) {
		q.Set("advs", "true")
		q.Set("cid", selected(doc, "#cid"))
		q.Set("mid", selected(doc, "#mid"))
		q.Set("pf", value(doc, "#pf"))
		q.Set("pt", value(doc, "#pt"))
		if checked(doc.Find("#sid")) {
			q.Set("sid", "true")
		}
	}
	return p.Load("/search?" + q.Encode())
}

func (s *Store) login(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		email := strings.TrimSpace(value(doc, "#Email"))
		password := value(doc, "#Password")

		if email == "" {
			sh.loginErrors = []string{MsgEnterEmail}
			sh.loginSummary = []string{MsgEnterEmail}
			return "/login"
		}
		acct, ok := s.accounts[strings.ToLower(email)]
		switch {
		case !ok:
			sh.loginSummary = []string{MsgNoAccount}
		case acct.Password != password:
			sh.loginSummary = []string{MsgWrongCredentials}
		default:
			sh.account = acct.Email
			return "/"
		}
		sh.loginEmail = email
		return "/login"
	})
}

func (s *Store) register(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		a := Account{
			FirstName:  strings.TrimSpace(value(doc, "#FirstName")),
			LastName:   strings.TrimSpace(value(doc, "#LastName")),
			Email:      strings.TrimSpace(value(doc, "#Email")),
			Password:   value(doc, "#Password"),
			Newsletter: checked(doc.Find("#Newsletter")),
		}
		confirm := value(doc, "#ConfirmPassword")

		errs := map[string]string{}
		if a.FirstName == "" {
			errs["FirstName"] = "First name is required."
		}
		if a.LastName == "" {
			errs["LastName"] = "Last name is required."
		}
		switch {
		case a.Email == "":
			errs["Email"] = "Email is required."
		case !emailPattern.MatchString(a.Email):
			errs["Email"] = "Wrong email"
		}
		switch {
		case a.Password == "":
			errs["Password"] = "Password is required."
		case len(a.Password) < 6:
			errs["Password"] = "Password must meet the following rules: must have at least 6 characters and not greater than 64 characters"
		}
		if confirm != a.Password {
			errs["ConfirmPassword"] = "The password and confirmation password do not match."
		}
		if len(errs) > 0 {
			sh.regErrors = errs
			return "/register"
		}

		key := strings.ToLower(a.Email)
		if _, exists := s.accounts[key]; exists {
			sh.regSummary = []string{MsgEmailExists}
			return "/register"
		}
		s.accounts[key] = a
		if a.Newsletter {
			s.subscribers[key] = true
		}
		sh.account = a.Email
		return "/registerresult/1"
	})
}

func (s *Store) addToCart(p *htmldriver.Page, target *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		id := target.AttrOr("data-productid", "")
		product, ok := s.productByID(id)
		if !ok {
			return ""
		}
		qty := 1
		if v := value(doc, "#addtocart_"+id+"_EnteredQuantity"); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n <= 0 {
				sh.notice = "Quantity should be positive"
				return p.URL()
			}
			qty = n
		}
		sh.cart = addLine(sh.cart, product, qty)
		sh.notice = MsgAddedToCart
		return p.URL()
	})
}

func (s *Store) addToWishlist(p *htmldriver.Page, target *goquery.Selection) error {
	return s.update(p, func(sh *shopper, _ *goquery.Document) string {
		product, ok := s.productByID(target.AttrOr("data-productid", ""))
		if !ok {
			return ""
		}
		sh.wishlist = addLine(sh.wishlist, product, 1)
		sh.notice = MsgAddedToWishlist
		return p.URL()
	})
}

// applyLines rewrites lines from the rows of the cart or wishlist table:
// checked remove boxes and non-positive quantities drop the line
func applyLines(lines []line, doc *goquery.Document, rows string) []line {
	keep := make([]line, 0, len(lines))
	doc.Find(rows).Each(func(_ int, row *goquery.Selection) {
		id, err := strconv.Atoi(row.Find(`input[name="removefromcart"]`).AttrOr("value", ""))
		if err != nil {
			return
		}
		for _, l := range lines {
			if l.product.ID != id {
				continue
			}
			if checked(row.Find(`input[name="removefromcart"]`)) {
				return
			}
			if n, err := strconv.Atoi(strings.TrimSpace(row.Find(".qty-input").AttrOr("value", ""))); err == nil {
				if n <= 0 {
					return
				}
				l.qty = n
			}
			keep = append(keep, l)
			return
		}
	})
	return keep
}

func (s *Store) updateCart(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		sh.cart = applyLines(sh.cart, doc, ".cart-item-row")
		return "/cart"
	})
}

func (s *Store) updateWishlist(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		sh.wishlist = applyLines(sh.wishlist, doc, ".wishlist-item")
		return "/wishlist"
	})
}

func (s *Store) wishlistToCart(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		move := map[int]bool{}
		doc.Find(`.wishlist-item input[name="addtocart"]`).Each(func(_ int, box *goquery.Selection) {
			if id, err := strconv.Atoi(box.AttrOr("value", "")); err == nil && checked(box) {
				move[id] = true
			}
		})
		if len(move) == 0 {
			sh.notice = "No products selected to add to cart."
			return "/wishlist"
		}
		rest := sh.wishlist[:0:0]
		for _, l := range sh.wishlist {
			if move[l.product.ID] {
				sh.cart = addLine(sh.cart, l.product, l.qty)
				continue
			}
			rest = append(rest, l)
		}
		sh.wishlist = rest
		return "/cart"
	})
}

func (s *Store) applyDiscount(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		if strings.EqualFold(strings.TrimSpace(value(doc, "#discountcouponcode")), DiscountCode) {
			sh.discount = 0.10
			sh.couponMessage, sh.couponStatus = MsgCouponApplied, "success"
		} else {
			sh.couponMessage, sh.couponStatus = MsgCouponRejected, "failure"
		}
		return "/cart"
	})
}

func (s *Store) applyGiftCard(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, _ *goquery.Document) string {
		sh.giftMessage = MsgCouponRejected
		return "/cart"
	})
}

func (s *Store) estimateShipping(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		sh.country = selected(doc, "#CountryId")
		sh.state = selected(doc, "#StateProvinceId")
		sh.zip = strings.TrimSpace(value(doc, "#ZipPostalCode"))
		sh.shipping = nil
		switch {
		case sh.country == "" || sh.country == "0":
			sh.shippingError = "Country is required"
		case sh.zip == "":
			sh.shippingError = "Zip / postal code is required"
		default:
			sh.shipping = []string{"Ground ($0.00)", "Next Day Air ($0.00)", "2nd Day Air ($0.00)"}
		}
		return "/cart"
	})
}

func (s *Store) checkout(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		if !checked(doc.Find("#termsofservice")) {
			sh.checkoutWarn = MsgTermsRequired
			return "/cart"
		}
		if sh.account == "" {
			return "/login/checkoutasguest?returnUrl=%2Fcart"
		}
		return "/onepagecheckout"
	})
}

func (s *Store) changeCurrency(p *htmldriver.Page, target *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		id := selected(doc, "#customerCurrency")
		sh.currency = findCurrency(id).ID
		return p.URL()
	})
}

func (s *Store) subscribeFrom(input string) htmldriver.Handler {
	return func(p *htmldriver.Page, _ *goquery.Selection) error {
		s.subscribe(p, value(p.Document(), input))
		return nil
	}
}

// subscribe updates the footer in place, the way the storefront does with
// its AJAX call
func (s *Store) subscribe(p *htmldriver.Page, email string) {
	email = strings.TrimSpace(email)
	msg := MsgInvalidNewsletter
	if emailPattern.MatchString(email) {
		s.mu.Lock()
		s.subscribers[strings.ToLower(email)] = true
		s.mu.Unlock()
		msg = MsgSubscribed
	}

	doc := p.Document()
	switch s.layout {
	case LayoutAlternate:
		doc.Find(".newsletter-message").SetText(msg).RemoveAttr("style")
	case LayoutMinimal:
		doc.Find(".footer-signup .notification").Remove()
		doc.Find(".footer-signup").AppendHtml(`<div class="notification"></div>`)
		doc.Find(".footer-signup .notification").SetText(msg)
	default:
		doc.Find("#newsletter-result-block").SetText(msg).RemoveAttr("style")
		if msg == MsgSubscribed {
			doc.Find("#newsletter-subscribe-block").SetAttr("style", "display: none")
		}
	}
}

func (s *Store) unsubscribe(p *htmldriver.Page, _ *goquery.Selection) error {
	return s.update(p, func(sh *shopper, doc *goquery.Document) string {
		key := strings.ToLower(strings.TrimSpace(value(doc, "#unsubscribe-email")))
		if s.subscribers[key] {
			delete(s.subscribers, key)
			sh.pageResult = MsgUnsubscribed
		} else {
			sh.pageResult = MsgNotSubscribed
		}
		return "/newsletter/unsubscribe"
	})
}
