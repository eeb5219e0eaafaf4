package fakestore

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/driver/htmldriver"
)

type productView struct {
	ID          int
	Slug        string
	Name        string
	Description string
	Price       string
}

type lineView struct {
	ID        int
	Slug      string
	Name      string
	UnitPrice string
	Qty       int
	Subtotal  string
}

type view struct {
	Title            string
	PageClass        string
	Account          string
	CartQty          int
	WishlistQty      int
	Currencies       []option
	Notice           string
	Layout           Layout
	NewsletterResult string
	Menu             []MenuEntry

	Products []productView
	Product  productView

	Term          string
	Searched      bool
	Advanced      bool
	Warning       string
	Categories    []option
	Manufacturers []option

	Lines           []lineView
	SubTotal        string
	Discount        string
	Total           string
	DiscountMessage string
	DiscountStatus  string
	GiftCardMessage string
	Countries       []option
	States          []option
	Zip             string
	ShippingOptions []string
	ShippingError   string
	CheckoutWarning string

	SummaryTitle string
	Summary      []string
	Errors       []string
	FormEmail    string
	Guest        bool
	FieldErrors  map[string]string
	Days         []int
	Months       []option
	Years        []int

	Paragraphs  []string
	Unsubscribe bool
	Result      string
}

var months = []option{
	{ID: "1", Name: "January"}, {ID: "2", Name: "February"}, {ID: "3", Name: "March"},
	{ID: "4", Name: "April"}, {ID: "5", Name: "May"}, {ID: "6", Name: "June"},
	{ID: "7", Name: "July"}, {ID: "8", Name: "August"}, {ID: "9", Name: "September"},
	{ID: "10", Name: "October"}, {ID: "11", Name: "November"}, {ID: "12", Name: "December"},
}

func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func (s *Store) routes() {
	home := s.page("home", "Home", func(_ *shopper, v *view, _ *url.URL) {
		for _, id := range []int{3, 1, 5, 8} {
			if p, ok := s.productByID(strconv.Itoa(id)); ok {
				v.Products = append(v.Products, s.productView(p, v))
			}
		}
	})
	s.site.HandleFunc("/", home)

	s.site.HandleFunc("/login", s.page("login", "Login", func(sh *shopper, v *view, _ *url.URL) {
		v.Errors, v.Summary, v.FormEmail = sh.loginErrors, sh.loginSummary, sh.loginEmail
		if len(v.Summary) > 0 {
			v.SummaryTitle = MsgLoginFailed
		}
		sh.loginErrors, sh.loginSummary, sh.loginEmail = nil, nil, ""
	}))
	s.site.HandleFunc("/login/checkoutasguest", s.page("login", "Login", func(_ *shopper, v *view, _ *url.URL) {
		v.Guest = true
	}))
	s.site.HandleFunc("/logout", func(p *htmldriver.Page, u *url.URL) string {
		s.mu.Lock()
		s.shopperFor(p).account = ""
		s.mu.Unlock()
		return home(p, u)
	})

	s.site.HandleFunc("/register", s.page("register", "Register", func(sh *shopper, v *view, _ *url.URL) {
		v.FieldErrors, v.Summary = sh.regErrors, sh.regSummary
		v.Days, v.Months, v.Years = span(1, 31), months, span(1912, 2025)
		sh.regErrors, sh.regSummary = nil, nil
	}))
	s.site.HandleFunc("/registerresult/1", s.page("register_result", "Register", nil))

	s.site.HandleFunc("/search", s.page("search", "Search", func(_ *shopper, v *view, u *url.URL) {
		q := u.Query()
		v.Term = q.Get("q")
		v.Advanced = q.Get("advs") == "true"
		v.Categories = markSelected(categories, q.Get("cid"))
		v.Manufacturers = markSelected(manufacturers, q.Get("mid"))
		if !q.Has("q") {
			return
		}
		v.Searched = true
		if len(strings.TrimSpace(v.Term)) < MinTermLength {
			v.Warning = MsgMinTermLength
			return
		}
		f := SearchFilter{Term: v.Term}
		if v.Advanced {
			f.Category, f.Manufacturer = q.Get("cid"), q.Get("mid")
			f.PriceFrom, f.PriceTo = q.Get("pf"), q.Get("pt")
			f.Descriptions = q.Get("sid") == "true"
		}
		for _, p := range search(s.products, f) {
			v.Products = append(v.Products, s.productView(p, v))
		}
	}))

	s.site.HandleFunc("/cart", s.page("cart", "Shopping Cart", func(sh *shopper, v *view, _ *url.URL) {
		c := findCurrency(sh.currency)
		total := 0.0
		for _, l := range sh.cart {
			sub := l.product.Price * float64(l.qty)
			total += sub
			v.Lines = append(v.Lines, lineView{
				ID: l.product.ID, Slug: l.product.Slug, Name: l.product.Name,
				UnitPrice: formatMoney(l.product.Price, c), Qty: l.qty, Subtotal: formatMoney(sub, c),
			})
		}
		v.SubTotal = formatMoney(total, c)
		if sh.discount > 0 {
			off := total * sh.discount
			v.Discount = formatMoney(off, c)
			total -= off
		}
		v.Total = formatMoney(total, c)
		v.DiscountMessage, v.DiscountStatus, v.GiftCardMessage = sh.couponMessage, sh.couponStatus, sh.giftMessage
		v.Countries, v.States, v.Zip = markSelected(countries, sh.country), markSelected(states, sh.state), sh.zip
		v.ShippingOptions, v.ShippingError, v.CheckoutWarning = sh.shipping, sh.shippingError, sh.checkoutWarn
		sh.couponMessage, sh.giftMessage, sh.shippingError, sh.checkoutWarn = "", "", "", ""
	}))

	s.site.HandleFunc("/wishlist", s.page("wishlist", "Wishlist", func(sh *shopper, v *view, _ *url.URL) {
		c := findCurrency(sh.currency)
		for _, l := range sh.wishlist {
			v.Lines = append(v.Lines, lineView{
				ID: l.product.ID, Slug: l.product.Slug, Name: l.product.Name,
				UnitPrice: formatMoney(l.product.Price, c), Qty: l.qty,
			})
		}
	}))

	s.site.HandleFunc("/onepagecheckout", s.page("simple", "Checkout", func(_ *shopper, v *view, _ *url.URL) {
		v.PageClass = "checkout-page"
		v.Paragraphs = []string{"Billing address"}
	}))
	s.site.HandleFunc("/customer/info", s.page("simple", "My account - Customer info", func(sh *shopper, v *view, _ *url.URL) {
		v.PageClass = "account-page customer-info-page"
		v.Paragraphs = []string{sh.account}
	}))
	s.site.HandleFunc("/newsletter/unsubscribe", s.page("simple", "Newsletter unsubscribe", func(sh *shopper, v *view, _ *url.URL) {
		v.PageClass = "newsletter-unsubscribe-page"
		v.Unsubscribe = true
		v.Result, sh.pageResult = sh.pageResult, ""
	}))

	for _, m := range TopMenu {
		entry := m
		s.site.HandleFunc("/"+entry.Slug, s.page("simple", entry.Name, func(_ *shopper, v *view, _ *url.URL) {
			v.PageClass = "category-page"
			for _, p := range s.products {
				for _, cid := range entry.Categories {
					if inCategory(p, cid) {
						v.Paragraphs = append(v.Paragraphs, p.Name)
						break
					}
				}
			}
		}))
	}

	for _, p := range s.products {
		product := p
		s.site.HandleFunc("/"+product.Slug, s.page("product", product.Name, func(_ *shopper, v *view, _ *url.URL) {
			v.Product = s.productView(product, v)
		}))
	}
}

func (s *Store) productView(p Product, v *view) productView {
	var id string
	for _, c := range v.Currencies {
		if c.Selected {
			id = c.ID
		}
	}
	return productView{ID: p.ID, Slug: p.Slug, Name: p.Name, Description: p.Description, Price: formatMoney(p.Price, findCurrency(id))}
}

// page renders template name through the layout. fill runs with s.mu held.
func (s *Store) page(name, title string, fill func(sh *shopper, v *view, u *url.URL)) htmldriver.RenderFunc {
	return func(p *htmldriver.Page, u *url.URL) string {
		s.mu.Lock()
		sh := s.shopperFor(p)
		v := &view{
			Title:       title,
			Account:     sh.account,
			CartQty:     quantity(sh.cart),
			WishlistQty: quantity(sh.wishlist),
			Currencies:  make([]option, 0, len(currencies)),
			Notice:      sh.notice,
			Layout:      s.layout,
			Menu:        TopMenu,
		}
		for _, c := range currencies {
			v.Currencies = append(v.Currencies, option{ID: c.ID, Name: c.Name, Selected: c.ID == sh.currency})
		}
		sh.notice = ""
		if fill != nil {
			fill(sh, v, u)
		}
		s.mu.Unlock()

		var b strings.Builder
		if err := s.tmpl[name].ExecuteTemplate(&b, "layout", v); err != nil {
			return fmt.Sprintf(`<html><body><div class="page-title"><h1>Error</h1></div><div class="error">%s</div></body></html>`, err)
		}
		return b.String()
	}
}
