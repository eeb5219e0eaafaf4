package roddriver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// networkQuiet is how long no request may be in flight for network-idle
const networkQuiet = 500 * time.Millisecond

// Page wraps a rod page
type Page struct {
	page          *rod.Page
	incognito     *rod.Browser
	actionTimeout time.Duration
}

var _ driver.Page = (*Page)(nil)

var keys = map[string]input.Key{
	driver.KeyEnter:  input.Enter,
	driver.KeyEnd:    input.End,
	driver.KeyTab:    input.Tab,
	driver.KeyEscape: input.Escape,
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)
	if err := pg.Navigate(url); err != nil {
		return translate(ctx, fmt.Errorf("failed to navigate to %s: %w", url, err))
	}
	return translate(ctx, pg.WaitLoad())
}

func (p *Page) Locate(c locator.Candidate) driver.Element {
	return &element{page: p, cand: c}
}

func (p *Page) WaitForLoadState(ctx context.Context, state wait.State, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg := p.page.Context(tctx)

	switch state {
	case wait.NetworkIdle:
		pg.WaitRequestIdle(networkQuiet, nil, nil, nil)()
		if err := tctx.Err(); err != nil {
			return translate(ctx, err)
		}
		return nil
	default:
		return translate(ctx, pg.WaitLoad())
	}
}

func (p *Page) Screenshot(ctx context.Context, path string, fullPage bool) error {
	data, err := p.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (p *Page) Reload(ctx context.Context) error {
	return translate(ctx, p.page.Context(ctx).Reload())
}

func (p *Page) GoBack(ctx context.Context) error {
	return translate(ctx, p.page.Context(ctx).NavigateBack())
}

func (p *Page) SetViewportSize(ctx context.Context, width, height int) error {
	return p.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
}

func (p *Page) Press(ctx context.Context, key string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("roddriver: unsupported key %q", key)
	}
	return translate(ctx, p.page.Context(ctx).Keyboard.Press(k))
}

// ActiveElement returns the lower-case tag name of the focused element
func (p *Page) ActiveElement(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.activeElement ? document.activeElement.tagName.toLowerCase() : 'body'`)
	if err != nil {
		return "", translate(ctx, err)
	}
	return res.Value.Str(), nil
}

func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *Page) Close() error {
	err := p.page.Close()
	if p.incognito != nil {
		if cerr := p.incognito.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// translate reports deadline expiry as wait.ErrTimeout unless the caller's
// own context was the one cancelled
func translate(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", wait.ErrTimeout, err)
	}
	return err
}
