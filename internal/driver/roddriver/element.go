package roddriver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

type element struct {
	page *Page
	cand locator.Candidate
	pick func(rod.Elements) rod.Elements
}

var _ driver.Element = (*element)(nil)

// resolve queries the live DOM; it never waits
func (e *element) resolve(ctx context.Context) (rod.Elements, error) {
	pg := e.page.page.Context(ctx)
	var els rod.Elements
	var err error

	switch e.cand.Kind {
	case locator.Scoped:
		scopes, serr := pg.Elements(e.cand.Scope)
		if serr != nil {
			return nil, serr
		}
		for _, s := range scopes {
			inner, ierr := s.Elements(e.cand.Selector)
			if ierr != nil {
				return nil, ierr
			}
			els = append(els, inner...)
		}
	case locator.Keyword:
		all, aerr := pg.Elements(e.cand.Selector)
		if aerr != nil {
			return nil, aerr
		}
		kw := strings.ToLower(e.cand.Keyword)
		for _, el := range all {
			if mentions(el, kw) {
				els = append(els, el)
			}
		}
	default:
		els, err = pg.Elements(e.cand.Selector)
		if err != nil {
			return nil, err
		}
	}

	if e.pick != nil {
		els = e.pick(els)
	}
	return els, nil
}

func mentions(el *rod.Element, kw string) bool {
	if text, err := el.Text(); err == nil && strings.Contains(strings.ToLower(text), kw) {
		return true
	}
	if v, err := el.Attribute("value"); err == nil && v != nil {
		return strings.Contains(strings.ToLower(*v), kw)
	}
	return false
}

func (e *element) derive(pick func(rod.Elements) rod.Elements) driver.Element {
	prev := e.pick
	return &element{page: e.page, cand: e.cand, pick: func(els rod.Elements) rod.Elements {
		if prev != nil {
			els = prev(els)
		}
		return pick(els)
	}}
}

func (e *element) Nth(i int) driver.Element {
	return e.derive(func(els rod.Elements) rod.Elements {
		if i < 0 || i >= len(els) {
			return nil
		}
		return rod.Elements{els[i]}
	})
}

func (e *element) First() driver.Element { return e.Nth(0) }

func (e *element) Last() driver.Element {
	return e.derive(func(els rod.Elements) rod.Elements {
		if len(els) == 0 {
			return nil
		}
		return rod.Elements{els[len(els)-1]}
	})
}

func (e *element) WaitFor(ctx context.Context, state wait.State, timeout time.Duration) error {
	err := wait.Poll(ctx, timeout, wait.PollInterval, func(ctx context.Context) (bool, error) {
		els, err := e.resolve(ctx)
		if err != nil {
			return false, err
		}
		switch state {
		case wait.Attached:
			return len(els) > 0, nil
		case wait.Visible, wait.Hidden:
			shown := false
			if len(els) > 0 {
				if shown, err = els[0].Visible(); err != nil {
					return false, err
				}
			}
			return shown == (state == wait.Visible), nil
		default:
			return false, fmt.Errorf("roddriver: unsupported element state %q", state)
		}
	})
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", e.cand, err)
	}
	return nil
}

// first returns the first match bound to the action timeout
func (e *element) first(ctx context.Context, action string) (*rod.Element, error) {
	els, err := e.resolve(ctx)
	if err != nil {
		return nil, translate(ctx, err)
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s %s: no element: %w", action, e.cand, wait.ErrTimeout)
	}
	return els[0].Context(ctx).Timeout(e.page.actionTimeout), nil
}

func (e *element) Fill(ctx context.Context, value string) error {
	el, err := e.first(ctx, "fill")
	if err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return translate(ctx, err)
	}
	_, err = el.Eval(`function (v) {
		this.focus();
		this.value = v;
		this.dispatchEvent(new Event('input', { bubbles: true }));
		this.dispatchEvent(new Event('change', { bubbles: true }));
	}`, value)
	return translate(ctx, err)
}

func (e *element) Click(ctx context.Context) error {
	el, err := e.first(ctx, "click")
	if err != nil {
		return err
	}
	return translate(ctx, el.Click(proto.InputMouseButtonLeft, 1))
}

func (e *element) Check(ctx context.Context) error {
	el, err := e.first(ctx, "check")
	if err != nil {
		return err
	}
	checked, err := el.Property("checked")
	if err != nil {
		return translate(ctx, err)
	}
	if checked.Bool() {
		return nil
	}
	return translate(ctx, el.Click(proto.InputMouseButtonLeft, 1))
}

func (e *element) SelectOption(ctx context.Context, value string) error {
	el, err := e.first(ctx, "select")
	if err != nil {
		return err
	}
	byValue := fmt.Sprintf(`option[value="%s"]`, strings.ReplaceAll(value, `"`, `\"`))
	if err := el.Select([]string{byValue}, true, rod.SelectorTypeCSSSector); err == nil {
		return nil
	}
	return translate(ctx, el.Select([]string{value}, true, rod.SelectorTypeText))
}

func (e *element) TextContent(ctx context.Context) (string, error) {
	el, err := e.first(ctx, "textContent")
	if err != nil {
		return "", err
	}
	v, err := el.Property("textContent")
	if err != nil {
		return "", translate(ctx, err)
	}
	return v.Str(), nil
}

func (e *element) AllTextContents(ctx context.Context) ([]string, error) {
	els, err := e.resolve(ctx)
	if err != nil {
		return nil, translate(ctx, err)
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		v, err := el.Property("textContent")
		if err != nil {
			return nil, translate(ctx, err)
		}
		texts = append(texts, v.Str())
	}
	return texts, nil
}

func (e *element) Count(ctx context.Context) (int, error) {
	els, err := e.resolve(ctx)
	if err != nil {
		return 0, translate(ctx, err)
	}
	return len(els), nil
}

func (e *element) InputValue(ctx context.Context) (string, error) {
	el, err := e.first(ctx, "inputValue")
	if err != nil {
		return "", err
	}
	v, err := el.Property("value")
	if err != nil {
		return "", translate(ctx, err)
	}
	return v.Str(), nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	el, err := e.first(ctx, "getAttribute")
	if err != nil {
		return "", err
	}
	v, err := el.Attribute(name)
	if err != nil {
		return "", translate(ctx, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	els, err := e.resolve(ctx)
	if err != nil {
		return false, translate(ctx, err)
	}
	if len(els) == 0 {
		return false, nil
	}
	v, err := els[0].Visible()
	return v, translate(ctx, err)
}
