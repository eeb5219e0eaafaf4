// Package roddriver adapts go-rod (Chrome DevTools Protocol) to the driver
// boundary. Pages are opened in incognito contexts, optionally through
// go-rod/stealth to mask automation fingerprints.
package roddriver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/adyen/ecommerce-e2e/internal/driver"
)

// Options configures the Chrome instance
type Options struct {
	// ControlURL is the DevTools WebSocket of an external Chrome. Empty
	// launches a local Chrome.
	ControlURL string
	Headless   bool
	Stealth    bool
	// ActionTimeout bounds a single primitive. Default: 10s.
	ActionTimeout time.Duration
}

// Session owns one Chrome connection
type Session struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	opts    Options
}

var _ driver.Session = (*Session)(nil)

// Launch connects to ControlURL or starts a local Chrome
func Launch(ctx context.Context, opts Options) (*Session, error) {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 10 * time.Second
	}

	s := &Session{opts: opts}
	wsURL := opts.ControlURL
	if wsURL == "" {
		l := launcher.New().Headless(opts.Headless).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch chrome: %w", err)
		}
		wsURL = u
		s.lnch = l
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}
	s.browser = b
	return s, nil
}

// NewPage opens a page in a fresh incognito context
func (s *Session) NewPage(ctx context.Context) (driver.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	incognito, err := s.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}

	var page *rod.Page
	if s.opts.Stealth {
		page, err = stealth.Page(incognito)
	} else {
		page, err = incognito.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		incognito.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &Page{page: page, incognito: incognito, actionTimeout: s.opts.ActionTimeout}, nil
}

// Close disconnects and, for a launched Chrome, kills it
func (s *Session) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.cleanup()
	return err
}

func (s *Session) cleanup() {
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
}
