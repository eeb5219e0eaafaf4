// Package driver defines the browser-automation boundary consumed by the
// resilient action layer. Backends live in sub-packages.
package driver

import (
	"context"
	"time"

	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// Keys understood by Page.Press
const (
	KeyEnter  = "Enter"
	KeyEnd    = "End"
	KeyTab    = "Tab"
	KeyEscape = "Escape"
)

// Element is a lazy handle on every node matching a candidate. Nothing is
// resolved until an operation runs, so a handle stays valid across DOM
// updates. Single-node operations act on the first match.
//
// Timeouts are reported wrapping wait.ErrTimeout; anything else is a fault.
type Element interface {
	wait.Waiter

	Nth(i int) Element
	First() Element
	Last() Element

	Fill(ctx context.Context, value string) error
	Click(ctx context.Context) error
	Check(ctx context.Context) error
	SelectOption(ctx context.Context, value string) error

	TextContent(ctx context.Context) (string, error)
	AllTextContents(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	InputValue(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	IsVisible(ctx context.Context) (bool, error)
}

// Page is one live document in one isolated browser session
type Page interface {
	Navigate(ctx context.Context, url string) error
	Locate(c locator.Candidate) Element
	WaitForLoadState(ctx context.Context, state wait.State, timeout time.Duration) error
	Screenshot(ctx context.Context, path string, fullPage bool) error
	Reload(ctx context.Context) error
	GoBack(ctx context.Context) error
	SetViewportSize(ctx context.Context, width, height int) error
	Press(ctx context.Context, key string) error
	// ActiveElement returns the lower-case tag name of the focused node
	ActiveElement(ctx context.Context) (string, error)
	URL() string
	Close() error
}

// Session opens isolated pages; concurrent scenarios each get their own
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}
