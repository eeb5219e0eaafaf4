// Package pwdriver adapts playwright-go to the driver boundary. Every page
// is opened in its own browser context so concurrent scenarios share no
// cookies or storage.
package pwdriver

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/ecommerce-e2e/internal/driver"
)

// Options configures the launched browser
type Options struct {
	// Browser is chromium, firefox or webkit. Default: chromium.
	Browser  string
	Headless bool
	// ActionTimeout bounds a single primitive once its element was found.
	// Default: 10s.
	ActionTimeout time.Duration
	Viewport      *playwright.Size
}

// Session owns the Playwright process and one browser
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
}

var _ driver.Session = (*Session)(nil)

// Launch starts Playwright and the requested browser. Browsers must already
// be installed (go run github.com/playwright-community/playwright-go/cmd/playwright install).
func Launch(opts Options) (*Session, error) {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 10 * time.Second
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch opts.Browser {
	case "", "chromium", "chrome":
		bt = pw.Chromium
	case "firefox":
		bt = pw.Firefox
	case "webkit", "safari":
		bt = pw.WebKit
	default:
		pw.Stop()
		return nil, fmt.Errorf("unknown browser %q", opts.Browser)
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", bt.Name(), err)
	}

	return &Session{pw: pw, browser: browser, opts: opts}, nil
}

// Wrap adapts an already launched browser, e.g. one shared by a TestMain.
// Close on the returned session does not close the browser.
func Wrap(browser playwright.Browser, opts Options) *Session {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 10 * time.Second
	}
	return &Session{browser: browser, opts: opts}
}

// NewPage opens a page in a fresh browser context
func (s *Session) NewPage(ctx context.Context) (driver.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bctx, err := s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: s.opts.Viewport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &Page{page: page, bctx: bctx, actionTimeout: s.opts.ActionTimeout}, nil
}

// Close shuts down the browser and the Playwright driver it launched
func (s *Session) Close() error {
	if s.pw == nil {
		return nil
	}
	if err := s.browser.Close(); err != nil {
		s.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	if err := s.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
