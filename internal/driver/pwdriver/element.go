package pwdriver

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

type element struct {
	loc     playwright.Locator
	desc    string
	timeout time.Duration
}

var _ driver.Element = (*element)(nil)

func (e *element) with(loc playwright.Locator) driver.Element {
	return &element{loc: loc, desc: e.desc, timeout: e.timeout}
}

func (e *element) Nth(i int) driver.Element { return e.with(e.loc.Nth(i)) }
func (e *element) First() driver.Element    { return e.with(e.loc.First()) }
func (e *element) Last() driver.Element     { return e.with(e.loc.Last()) }

func (e *element) WaitFor(ctx context.Context, state wait.State, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var s *playwright.WaitForSelectorState
	switch state {
	case wait.Visible:
		s = playwright.WaitForSelectorStateVisible
	case wait.Attached:
		s = playwright.WaitForSelectorStateAttached
	case wait.Hidden:
		s = playwright.WaitForSelectorStateHidden
	default:
		return fmt.Errorf("pwdriver: unsupported element state %q", state)
	}
	err := e.loc.WaitFor(playwright.LocatorWaitForOptions{State: s, Timeout: millis(timeout)})
	if err != nil {
		return translate(fmt.Errorf("waiting for %s: %w", e.desc, err))
	}
	return nil
}

func (e *element) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(e.loc.Fill(value, playwright.LocatorFillOptions{Timeout: millis(e.timeout)}))
}

func (e *element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(e.loc.Click(playwright.LocatorClickOptions{Timeout: millis(e.timeout)}))
}

func (e *element) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translate(e.loc.Check(playwright.LocatorCheckOptions{Timeout: millis(e.timeout)}))
}

func (e *element) SelectOption(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.loc.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}},
		playwright.LocatorSelectOptionOptions{Timeout: millis(e.timeout)})
	return translate(err)
}

func (e *element) TextContent(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := e.loc.TextContent(playwright.LocatorTextContentOptions{Timeout: millis(e.timeout)})
	return s, translate(err)
}

func (e *element) AllTextContents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texts, err := e.loc.AllTextContents()
	return texts, translate(err)
}

func (e *element) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := e.loc.Count()
	return n, translate(err)
}

func (e *element) InputValue(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.loc.InputValue(playwright.LocatorInputValueOptions{Timeout: millis(e.timeout)})
	return v, translate(err)
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: millis(e.timeout)})
	return v, translate(err)
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	v, err := e.loc.IsVisible()
	return v, translate(err)
}
