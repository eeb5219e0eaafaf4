// Package pages holds the page objects of the storefront. Each page object
// wraps a shared Context and expresses its interactions as resilient
// actions over named locator fallback chains.
package pages

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/logging"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// DefaultBaseURL is the public nopCommerce demo store
const DefaultBaseURL = "https://demo.nopcommerce.com/"

// DefaultArtifactDir is where screenshots go unless configured
const DefaultArtifactDir = "screenshots"

// Context is the per-scenario state shared by page objects: the live page,
// the action executor and its journal. Page objects borrow it; the scenario
// owns and closes the page.
type Context struct {
	page           driver.Page
	baseURL        string
	exec           *action.Executor
	journal        *action.Journal
	catalog        *locator.Catalog
	artifactDir    string
	probeTimeout   time.Duration
	elementTimeout time.Duration
	log            logrus.FieldLogger
	now            func() time.Time
}

// Option configures a Context
type Option func(*Context)

// WithCatalog applies locator overrides from cat
func WithCatalog(cat *locator.Catalog) Option {
	return func(c *Context) { c.catalog = cat }
}

// WithArtifactDir sets where screenshots are written
func WithArtifactDir(dir string) Option {
	return func(c *Context) {
		if dir != "" {
			c.artifactDir = dir
		}
	}
}

// WithProbeTimeout sets how long each locator candidate is probed
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Context) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// WithElementTimeout sets the assertive and navigation wait
func WithElementTimeout(d time.Duration) Option {
	return func(c *Context) {
		if d > 0 {
			c.elementTimeout = d
		}
	}
}

// WithJournal records diagnostics into j
func WithJournal(j *action.Journal) Option {
	return func(c *Context) {
		if j != nil {
			c.journal = j
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock replaces time.Now for screenshot names
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// NewContext wraps page. baseURL defaults to DefaultBaseURL.
func NewContext(page driver.Page, baseURL string, opts ...Option) *Context {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Context{
		page:           page,
		baseURL:        baseURL,
		journal:        action.NewJournal(),
		artifactDir:    DefaultArtifactDir,
		probeTimeout:   wait.ProbeTimeout,
		elementTimeout: wait.DefaultTimeout,
		log:            logging.Discard(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.exec = action.NewExecutor(page,
		action.WithProbeTimeout(c.probeTimeout),
		action.WithAssertTimeout(c.elementTimeout),
		action.WithJournal(c.journal),
		action.WithLogger(c.log),
	)
	return c
}

// Page returns the live page
func (c *Context) Page() driver.Page { return c.page }

// BaseURL returns the storefront root, with a trailing slash
func (c *Context) BaseURL() string { return c.baseURL }

// Executor returns the action executor
func (c *Context) Executor() *action.Executor { return c.exec }

// Journal returns the diagnostics journal
func (c *Context) Journal() *action.Journal { return c.journal }

// Diagnostics returns everything recorded so far
func (c *Context) Diagnostics() []action.Diagnostic { return c.journal.Entries() }

// Spec returns s with any catalog override applied
func (c *Context) Spec(s locator.Spec) locator.Spec {
	return c.catalog.Resolve(s)
}

// slow is the probe timeout for content that loads after navigation. It
// never exceeds wait.ProbeTimeout.
func (c *Context) slow() time.Duration {
	return min(2*c.probeTimeout, wait.ProbeTimeout)
}

// Navigate opens path relative to the base URL
func (c *Context) Navigate(ctx context.Context, path string) error {
	target := c.baseURL + strings.TrimPrefix(path, "/")
	c.log.WithField("url", target).Debug("navigate")

	err := c.page.Navigate(ctx, target)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, wait.ErrTimeout):
		return &wait.TimeoutError{Target: target, State: "load", Timeout: c.elementTimeout, Err: err}
	default:
		return &action.DriverFault{Action: "navigate", Target: target, Err: err}
	}
}

// WaitForNavigation waits for the network to go idle. A timeout is only a
// warning: the page is usually usable long before every tracker settles.
func (c *Context) WaitForNavigation(ctx context.Context) error {
	err := c.page.WaitForLoadState(ctx, wait.NetworkIdle, c.elementTimeout)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, wait.ErrTimeout):
		c.journal.Warn("waitForNavigation", c.page.URL(), "network not idle after %s", c.elementTimeout)
		return nil
	default:
		return &action.DriverFault{Action: "waitForNavigation", Target: c.page.URL(), Err: err}
	}
}

// Press sends key to the focused element
func (c *Context) Press(ctx context.Context, key string) error {
	return c.pageErr(ctx, "press "+key, c.page.Press(ctx, key))
}

// SetViewport resizes the page viewport
func (c *Context) SetViewport(ctx context.Context, width, height int) error {
	c.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("set viewport")
	return c.pageErr(ctx, "setViewport", c.page.SetViewportSize(ctx, width, height))
}

// GoBack returns to the previous page in history
func (c *Context) GoBack(ctx context.Context) error {
	return c.pageErr(ctx, "goBack", c.page.GoBack(ctx))
}

// Reload reloads the current page
func (c *Context) Reload(ctx context.Context) error {
	return c.pageErr(ctx, "reload", c.page.Reload(ctx))
}

// FocusedElement returns the lower-case tag name of the focused element
func (c *Context) FocusedElement(ctx context.Context) (string, error) {
	tag, err := c.page.ActiveElement(ctx)
	if err != nil {
		return "", c.pageErr(ctx, "activeElement", err)
	}
	return tag, nil
}

func (c *Context) pageErr(ctx context.Context, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, wait.ErrTimeout):
		return &wait.TimeoutError{Target: c.page.URL(), State: wait.State(op), Timeout: c.elementTimeout, Err: err}
	default:
		return &action.DriverFault{Action: op, Target: c.page.URL(), Err: err}
	}
}

// TakeScreenshot captures the full page as {label}-{timestamp}.png in the
// artifact directory and returns the path
func (c *Context) TakeScreenshot(ctx context.Context, label string) (string, error) {
	path := filepath.Join(c.artifactDir, ScreenshotName(label, c.now()))
	if err := c.page.Screenshot(ctx, path, true); err != nil {
		return "", fmt.Errorf("failed to take screenshot %s: %w", label, err)
	}
	c.log.WithField("path", path).Info("screenshot saved")
	return path, nil
}

// ScreenshotName builds {label}-{ISO 8601 UTC}.png with ':' and '.'
// replaced by '-'
func ScreenshotName(label string, t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return fmt.Sprintf("%s-%s.png", label, stamp)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
