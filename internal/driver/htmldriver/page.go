package htmldriver

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Event records one primitive the page performed
type Event struct {
	Action    string
	Candidate string
	Node      string
	Value     string
}

// Page is a single document on a Site. It is not safe for concurrent use.
type Page struct {
	site     *Site
	url      string
	doc      *goquery.Document
	history  []string
	focused  *goquery.Selection
	events   []Event
	viewport [2]int
	closed   bool
}

var _ driver.Page = (*Page)(nil)

// Navigate loads the document served at rawURL. Unknown paths load a
// "not found" document, as a browser would.
func (p *Page) Navigate(ctx context.Context, rawURL string) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.url != "" && p.url != "about:blank" {
		p.history = append(p.history, p.url)
	}
	return p.load(rawURL)
}

// Load navigates without a context; intended for handlers
func (p *Page) Load(rawURL string) error {
	if p.url != "" && p.url != "about:blank" {
		p.history = append(p.history, p.url)
	}
	return p.load(rawURL)
}

func (p *Page) load(rawURL string) error {
	u, err := p.resolveURL(rawURL)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", rawURL, err)
	}
	html, _ := p.site.render(p, u)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", u, err)
	}
	p.doc = doc
	p.url = u.String()
	p.focused = nil
	p.record("navigate", "", "", u.String())
	return nil
}

func (p *Page) resolveURL(rawURL string) (*url.URL, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	base := p.site.base
	if cur, err := url.Parse(p.url); err == nil && cur.IsAbs() && cur.Scheme != "about" {
		base = cur
	}
	return base.ResolveReference(ref), nil
}

// Document exposes the live document so handlers can mutate it
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Query returns the query parameters of the current URL
func (p *Page) Query() url.Values {
	u, err := url.Parse(p.url)
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}

// Events returns every primitive performed so far
func (p *Page) Events() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Viewport returns the last size set with SetViewportSize
func (p *Page) Viewport() (int, int) {
	return p.viewport[0], p.viewport[1]
}

// Locate returns a lazy element for c
func (p *Page) Locate(c locator.Candidate) driver.Element {
	return &element{page: p, cand: c}
}

// WaitForLoadState returns immediately; documents are complete once parsed
func (p *Page) WaitForLoadState(ctx context.Context, state wait.State, timeout time.Duration) error {
	return p.usable(ctx)
}

// Screenshot writes the current markup to path. No pixels are rendered.
func (p *Page) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	html, err := goquery.OuterHtml(p.doc.Selection)
	if err != nil {
		return fmt.Errorf("failed to serialise document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	p.record("screenshot", "", "", path)
	return nil
}

// Reload renders the current URL again, dropping client-side changes
func (p *Page) Reload(ctx context.Context) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	return p.load(p.url)
}

// GoBack returns to the previous URL; with no history it is a no-op
func (p *Page) GoBack(ctx context.Context) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	if len(p.history) == 0 {
		return nil
	}
	prev := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	return p.load(prev)
}

// SetViewportSize records the size; layout is not simulated
func (p *Page) SetViewportSize(ctx context.Context, width, height int) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	p.viewport = [2]int{width, height}
	return nil
}

// Press runs the key handlers registered on the site against the focused
// node. Tab first moves focus to the next visible focusable node.
func (p *Page) Press(ctx context.Context, key string) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	if key == driver.KeyTab {
		p.tab()
	}
	target := p.focused
	if target == nil {
		target = p.doc.Selection.Slice(0, 0)
	}
	p.record("press", "", describe(target), key)
	for _, fn := range p.site.keyHooks(key) {
		if err := fn(p, target); err != nil {
			return err
		}
	}
	return nil
}

// focusable is the tab order of a document, in document order
const focusable = "a[href], button, input, select, textarea"

func (p *Page) tab() {
	order := p.doc.Find(focusable).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return visible(s)
	})
	if order.Length() == 0 {
		p.focused = nil
		return
	}
	next := 0
	if p.focused != nil {
		if i := order.IndexOfSelection(p.focused); i >= 0 {
			next = (i + 1) % order.Length()
		}
	}
	p.focused = order.Eq(next)
}

// ActiveElement returns the lower-case tag name of the focused node, or
// "body" when nothing is focused
func (p *Page) ActiveElement(ctx context.Context) (string, error) {
	if err := p.usable(ctx); err != nil {
		return "", err
	}
	if p.focused == nil || p.focused.Length() == 0 {
		return "body", nil
	}
	return goquery.NodeName(p.focused), nil
}

// URL returns the current URL
func (p *Page) URL() string {
	return p.url
}

// Close marks the page closed; later calls fail
func (p *Page) Close() error {
	p.closed = true
	return nil
}

func (p *Page) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.closed {
		return errPageClosed
	}
	return nil
}

func (p *Page) record(action, candidate, node, value string) {
	p.events = append(p.events, Event{Action: action, Candidate: candidate, Node: node, Value: value})
}

// match resolves a candidate against the current document
func (p *Page) match(c locator.Candidate) *goquery.Selection {
	switch c.Kind {
	case locator.Scoped:
		return p.doc.Find(c.Scope).Find(c.Selector)
	case locator.Keyword:
		kw := strings.ToLower(c.Keyword)
		return p.doc.Find(c.Selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(s.Text()), kw) {
				return true
			}
			v, _ := s.Attr("value")
			return strings.Contains(strings.ToLower(v), kw)
		})
	default:
		return p.doc.Find(c.Selector)
	}
}

// describe renders a node as tag#id.class for event logs
func describe(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	n := s.First()
	var b strings.Builder
	b.WriteString(goquery.NodeName(n))
	if id, ok := n.Attr("id"); ok && id != "" {
		b.WriteString("#" + id)
	}
	if class, ok := n.Attr("class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteString("." + c)
		}
	}
	return b.String()
}

// visible approximates CSS visibility from markup: hidden inputs, the
// hidden attribute and inline display/visibility styles on any ancestor.
func visible(s *goquery.Selection) bool {
	if s.Length() == 0 {
		return false
	}
	n := s.First()
	if goquery.NodeName(n) == "input" {
		if t, _ := n.Attr("type"); strings.EqualFold(t, "hidden") {
			return false
		}
	}
	for cur := n; cur.Length() > 0; cur = cur.Parent() {
		if _, ok := cur.Attr("hidden"); ok {
			return false
		}
		if style, ok := cur.Attr("style"); ok {
			compact := strings.ToLower(strings.ReplaceAll(style, " ", ""))
			if strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden") {
				return false
			}
		}
	}
	return true
}
