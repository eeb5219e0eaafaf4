// Package fakestore is an in-process storefront with the markup of the
// nopCommerce demo store. It runs on htmldriver, so page objects can be
// exercised hermetically: every form, cart and account operation is
// implemented by Go handlers keeping per-page shopper state.
package fakestore

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/driver/htmldriver"
)

//go:embed templates/*.html
var templateFS embed.FS

// Layout selects the footer markup, so tests can exercise locator fallbacks
type Layout string

const (
	// LayoutStandard has the #newsletter-email block
	LayoutStandard Layout = "standard"
	// LayoutAlternate has a generic email input and a "Subscribe" button
	LayoutAlternate Layout = "alternate"
	// LayoutMinimal has only a footer email input submitted with Enter
	LayoutMinimal Layout = "minimal"
)

// Messages the store shows
const (
	MsgLoginFailed       = "Login was unsuccessful. Please correct the errors and try again."
	MsgNoAccount         = "No customer account found"
	MsgWrongCredentials  = "The credentials provided are incorrect"
	MsgEnterEmail        = "Please enter your email"
	MsgRegistered        = "Your registration completed"
	MsgEmailExists       = "The specified email already exists"
	MsgAddedToCart       = "The product has been added to your shopping cart"
	MsgAddedToWishlist   = "The product has been added to your wishlist"
	MsgSubscribed        = "Thank you for signing up! A verification email has been sent. We appreciate your interest."
	MsgInvalidNewsletter = "Enter valid email"
	MsgUnsubscribed      = "You have been unsubscribed from the newsletter."
	MsgNotSubscribed     = "This email is not subscribed to the newsletter."
	MsgCouponRejected    = "The coupon code you entered couldn't be applied to your order"
	MsgCouponApplied     = "The coupon code was applied"
	MsgMinTermLength     = "Search term minimum length is 3 characters"
	MsgTermsRequired     = "Please accept the terms of service before the next step."
)

// DiscountCode is the only coupon the store accepts; it takes 10% off
const DiscountCode = "SAVE10"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Account is a registered customer
type Account struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Newsletter bool
}

// Options configures a Store
type Options struct {
	BaseURL  string
	Layout   Layout
	Products []Product
	Accounts []Account
}

type line struct {
	product Product
	qty     int
}

// shopper is the state one page (one browser context) carries
type shopper struct {
	account  string
	cart     []line
	wishlist []line
	currency string
	notice   string

	loginErrors   []string
	loginSummary  []string
	loginEmail    string
	regErrors     map[string]string
	regSummary    []string
	discount      float64
	couponMessage string
	couponStatus  string
	giftMessage   string
	shipping      []string
	shippingError string
	country       string
	state         string
	zip           string
	checkoutWarn  string
	pageResult    string
}

// Store is a fake storefront. It implements driver.Session; every page it
// opens is an isolated shopper.
type Store struct {
	site     *htmldriver.Site
	layout   Layout
	products []Product
	tmpl     map[string]*template.Template

	mu          sync.Mutex
	accounts    map[string]Account
	subscribers map[string]bool
	shoppers    map[*htmldriver.Page]*shopper
}

var _ driver.Session = (*Store)(nil)

// New builds a store from opts
func New(opts Options) (*Store, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://store.test/"
	}
	if opts.Layout == "" {
		opts.Layout = LayoutStandard
	}
	if opts.Products == nil {
		opts.Products = DefaultProducts()
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Store{
		site:        htmldriver.NewSite(opts.BaseURL),
		layout:      opts.Layout,
		products:    opts.Products,
		tmpl:        tmpl,
		accounts:    make(map[string]Account),
		subscribers: make(map[string]bool),
		shoppers:    make(map[*htmldriver.Page]*shopper),
	}
	for _, a := range opts.Accounts {
		s.accounts[strings.ToLower(a.Email)] = a
	}
	s.routes()
	s.interactions()
	return s, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	pages := []string{"home", "product", "login", "register", "register_result", "search", "cart", "wishlist", "simple"}
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// BaseURL returns the store origin with a trailing slash
func (s *Store) BaseURL() string {
	return s.site.BaseURL()
}

// Site exposes the underlying htmldriver site
func (s *Store) Site() *htmldriver.Site {
	return s.site
}

// NewPage opens a page for a new shopper
func (s *Store) NewPage(ctx context.Context) (driver.Page, error) {
	return s.site.NewPage(ctx)
}

// Open is NewPage returning the concrete page
func (s *Store) Open() *htmldriver.Page {
	return s.site.Open()
}

// Close releases nothing; pages hold no external resources
func (s *Store) Close() error {
	return s.site.Close()
}

// Register adds an account directly
func (s *Store) Register(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[strings.ToLower(a.Email)] = a
	if a.Newsletter {
		s.subscribers[strings.ToLower(a.Email)] = true
	}
}

// HasAccount reports whether email is registered
func (s *Store) HasAccount(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[strings.ToLower(email)]
	return ok
}

// Subscribed reports whether email is on the newsletter list
func (s *Store) Subscribed(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribers[strings.ToLower(email)]
}

// Product returns the product with slug
func (s *Store) Product(slug string) (Product, bool) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) productByID(id string) (Product, bool) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return Product{}, false
	}
	for _, p := range s.products {
		if p.ID == n {
			return p, true
		}
	}
	return Product{}, false
}

// shopperFor returns the state of page p. Callers hold s.mu.
func (s *Store) shopperFor(p *htmldriver.Page) *shopper {
	sh, ok := s.shoppers[p]
	if !ok {
		sh = &shopper{currency: USD}
		s.shoppers[p] = sh
	}
	return sh
}

func quantity(lines []line) int {
	n := 0
	for _, l := range lines {
		n += l.qty
	}
	return n
}

func addLine(lines []line, p Product, qty int) []line {
	for i := range lines {
		if lines[i].product.ID == p.ID {
			lines[i].qty += qty
			return lines
		}
	}
	return append(lines, line{product: p, qty: qty})
}
