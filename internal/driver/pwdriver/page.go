package pwdriver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Page wraps a playwright.Page and its private browser context
type Page struct {
	page          playwright.Page
	bctx          playwright.BrowserContext
	actionTimeout time.Duration
}

var _ driver.Page = (*Page)(nil)

// NewPage adapts an existing Playwright page. Close closes only the page.
func NewPage(page playwright.Page, actionTimeout time.Duration) *Page {
	if actionTimeout <= 0 {
		actionTimeout = 10 * time.Second
	}
	return &Page{page: page, actionTimeout: actionTimeout}
}

// Raw exposes the underlying Playwright page
func (p *Page) Raw() playwright.Page {
	return p.page
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.page.Goto(url); err != nil {
		return translate(fmt.Errorf("failed to navigate to %s: %w", url, err))
	}
	return nil
}

func (p *Page) Locate(c locator.Candidate) driver.Element {
	return &element{loc: resolve(p.page, c), desc: c.String(), timeout: p.actionTimeout}
}

func (p *Page) WaitForLoadState(ctx context.Context, state wait.State, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var ls *playwright.LoadState
	switch state {
	case wait.NetworkIdle:
		ls = playwright.LoadStateNetworkidle
	case wait.Attached:
		ls = playwright.LoadStateDomcontentloaded
	default:
		ls = playwright.LoadStateLoad
	}
	err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   ls,
		Timeout: millis(timeout),
	})
	return translate(err)
}

func (p *Page) Screenshot(ctx context.Context, path string, fullPage bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(fullPage),
	})
	if err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	return nil
}

func (p *Page) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Reload()
	return translate(err)
}

func (p *Page) GoBack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.GoBack()
	return translate(err)
}

func (p *Page) SetViewportSize(ctx context.Context, width, height int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.SetViewportSize(width, height)
}

func (p *Page) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(p.page.Keyboard().Press(key))
}

// ActiveElement returns the lower-case tag name of the focused element
func (p *Page) ActiveElement(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := p.page.Evaluate(activeElementJS)
	if err != nil {
		return "", translate(err)
	}
	tag, _ := v.(string)
	return tag, nil
}

func (p *Page) URL() string {
	return p.page.URL()
}

func (p *Page) Close() error {
	if err := p.page.Close(); err != nil {
		return err
	}
	if p.bctx != nil {
		return p.bctx.Close()
	}
	return nil
}

// resolve maps a candidate onto a Playwright locator. Keyword candidates
// match visible text or the value attribute, so both <button>Subscribe</button>
// and <input value="Subscribe"> are found.
const activeElementJS = `() => document.activeElement ? document.activeElement.tagName.toLowerCase() : 'body'`

func resolve(page playwright.Page, c locator.Candidate) playwright.Locator {
	switch c.Kind {
	case locator.Scoped:
		return page.Locator(c.Scope).Locator(c.Selector)
	case locator.Keyword:
		byText := page.Locator(c.Selector).Filter(playwright.LocatorFilterOptions{HasText: c.Keyword})
		byValue := page.Locator(fmt.Sprintf(`%s[value*="%s" i]`, c.Selector, cssEscape(c.Keyword)))
		return byText.Or(byValue)
	default:
		return page.Locator(c.Selector)
	}
}

func cssEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// translate rewraps Playwright timeouts as wait.ErrTimeout
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", wait.ErrTimeout, err)
	}
	return err
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
