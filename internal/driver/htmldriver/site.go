// Package htmldriver is a driver backend over static HTML documents parsed
// with goquery. It renders nothing and runs no scripts; behaviour that a
// real storefront implements in the browser or on the server is supplied as
// Go handlers registered on a Site. It backs hermetic tests of page objects.
package htmldriver

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/adyen/ecommerce-e2e/internal/driver"
)

// Handler reacts to an interaction. target is the node acted on; it may be
// empty for key presses with nothing focused.
type Handler func(p *Page, target *goquery.Selection) error

// RenderFunc produces the document p receives for a request URL
type RenderFunc func(p *Page, u *url.URL) string

type hook struct {
	selector string
	fn       Handler
}

// Site is a set of routes and interaction handlers shared by the pages it opens
type Site struct {
	mu           sync.RWMutex
	base         *url.URL
	routes       map[string]RenderFunc
	clicks       []hook
	changes      []hook
	keys         map[string][]Handler
	pollInterval time.Duration
}

var _ driver.Session = (*Site)(nil)

// NewSite creates a site rooted at baseURL
func NewSite(baseURL string) *Site {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		u = &url.URL{Scheme: "http", Host: "store.test", Path: "/"}
	}
	return &Site{
		base:         u,
		routes:       make(map[string]RenderFunc),
		keys:         make(map[string][]Handler),
		pollInterval: 5 * time.Millisecond,
	}
}

// BaseURL returns the site origin, always with a trailing slash
func (s *Site) BaseURL() string {
	u := *s.base
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// Handle serves a fixed document at path
func (s *Site) Handle(path, html string) *Site {
	return s.HandleFunc(path, func(*Page, *url.URL) string { return html })
}

// HandleFunc serves a rendered document at path
func (s *Site) HandleFunc(path string, render RenderFunc) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = render
	return s
}

// OnClick registers fn for clicks on nodes matching selector
func (s *Site) OnClick(selector string, fn Handler) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks = append(s.clicks, hook{selector: selector, fn: fn})
	return s
}

// OnChange registers fn for fill, check and select on nodes matching selector
func (s *Site) OnChange(selector string, fn Handler) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, hook{selector: selector, fn: fn})
	return s
}

// OnKey registers fn for key presses; target is the focused node
func (s *Site) OnKey(key string, fn Handler) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = append(s.keys[key], fn)
	return s
}

// SetPollInterval changes how often waits re-evaluate the document
func (s *Site) SetPollInterval(d time.Duration) *Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollInterval = d
	return s
}

// NewPage opens a blank page on the site
func (s *Site) NewPage(ctx context.Context) (driver.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Open(), nil
}

// Open is NewPage returning the concrete type, for tests that inspect events
func (s *Site) Open() *Page {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(blankDocument))
	return &Page{site: s, url: "about:blank", doc: doc}
}

// Close is a no-op; pages hold no external resources
func (s *Site) Close() error {
	return nil
}

func (s *Site) render(p *Page, u *url.URL) (string, bool) {
	s.mu.RLock()
	path := u.Path
	if path == "" {
		path = "/"
	}
	r, ok := s.routes[path]
	s.mu.RUnlock()
	if !ok {
		return notFoundDocument, false
	}
	return r(p, u), true
}

func (s *Site) clickHooks(target *goquery.Selection) []Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matching(s.clicks, target)
}

func (s *Site) changeHooks(target *goquery.Selection) []Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matching(s.changes, target)
}

func (s *Site) keyHooks(key string) []Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Handler(nil), s.keys[key]...)
}

func (s *Site) interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pollInterval
}

func matching(hooks []hook, target *goquery.Selection) []Handler {
	var fns []Handler
	for _, h := range hooks {
		if target.Is(h.selector) {
			fns = append(fns, h.fn)
		}
	}
	return fns
}

const (
	blankDocument    = `<html><head></head><body></body></html>`
	notFoundDocument = `<html><head><title>Page not found</title></head><body><h1>Page not found</h1></body></html>`
)
