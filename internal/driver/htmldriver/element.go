package htmldriver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

var errPageClosed = errors.New("htmldriver: page is closed")

type element struct {
	page *Page
	cand locator.Candidate
	pick func(*goquery.Selection) *goquery.Selection
}

var _ driver.Element = (*element)(nil)

func (e *element) resolve() *goquery.Selection {
	all := e.page.match(e.cand)
	if e.pick == nil {
		return all
	}
	return e.pick(all)
}

func (e *element) derive(pick func(*goquery.Selection) *goquery.Selection) driver.Element {
	prev := e.pick
	return &element{page: e.page, cand: e.cand, pick: func(s *goquery.Selection) *goquery.Selection {
		if prev != nil {
			s = prev(s)
		}
		return pick(s)
	}}
}

func (e *element) Nth(i int) driver.Element {
	return e.derive(func(s *goquery.Selection) *goquery.Selection { return s.Eq(i) })
}

func (e *element) First() driver.Element {
	return e.derive(func(s *goquery.Selection) *goquery.Selection { return s.First() })
}

func (e *element) Last() driver.Element {
	return e.derive(func(s *goquery.Selection) *goquery.Selection { return s.Last() })
}

// WaitFor polls the document until the first match reaches state
func (e *element) WaitFor(ctx context.Context, state wait.State, timeout time.Duration) error {
	if err := e.page.usable(ctx); err != nil {
		return err
	}
	err := wait.Poll(ctx, timeout, e.page.site.interval(), func(context.Context) (bool, error) {
		s := e.resolve()
		switch state {
		case wait.Attached:
			return s.Length() > 0, nil
		case wait.Visible:
			return visible(s), nil
		case wait.Hidden:
			return !visible(s), nil
		default:
			return false, fmt.Errorf("htmldriver: unsupported element state %q", state)
		}
	})
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", e.cand, err)
	}
	return nil
}

// actionable returns the first visible match or a timeout, as a browser
// would after its own actionability checks expire.
func (e *element) actionable(ctx context.Context, action string) (*goquery.Selection, error) {
	if err := e.page.usable(ctx); err != nil {
		return nil, err
	}
	s := e.resolve().First()
	if !visible(s) {
		return nil, fmt.Errorf("%s %s: element not actionable: %w", action, e.cand, wait.ErrTimeout)
	}
	return s, nil
}

func (e *element) attached(ctx context.Context, action string) (*goquery.Selection, error) {
	if err := e.page.usable(ctx); err != nil {
		return nil, err
	}
	s := e.resolve().First()
	if s.Length() == 0 {
		return nil, fmt.Errorf("%s %s: no element: %w", action, e.cand, wait.ErrTimeout)
	}
	return s, nil
}

func (e *element) Fill(ctx context.Context, value string) error {
	s, err := e.actionable(ctx, "fill")
	if err != nil {
		return err
	}
	switch goquery.NodeName(s) {
	case "textarea":
		s.SetText(value)
	case "input":
		s.SetAttr("value", value)
	default:
		return fmt.Errorf("fill %s: element is a <%s>, not an input", e.cand, goquery.NodeName(s))
	}
	e.page.focused = s
	e.page.record("fill", e.cand.String(), describe(s), value)
	return e.page.fire(e.page.site.changeHooks(s), s)
}

func (e *element) Click(ctx context.Context) error {
	s, err := e.actionable(ctx, "click")
	if err != nil {
		return err
	}
	e.page.focused = s
	e.page.record("click", e.cand.String(), describe(s), "")

	hooks := e.page.site.clickHooks(s)
	if len(hooks) == 0 && goquery.NodeName(s) == "a" {
		if href, ok := s.Attr("href"); ok && href != "" && !strings.HasPrefix(href, "#") {
			return e.page.Load(href)
		}
	}
	return e.page.fire(hooks, s)
}

func (e *element) Check(ctx context.Context) error {
	s, err := e.actionable(ctx, "check")
	if err != nil {
		return err
	}
	t, _ := s.Attr("type")
	if goquery.NodeName(s) != "input" || (t != "checkbox" && t != "radio") {
		return fmt.Errorf("check %s: element is not a checkbox or radio", e.cand)
	}
	if t == "radio" {
		if name, ok := s.Attr("name"); ok {
			e.page.doc.Find(fmt.Sprintf(`input[type="radio"][name=%q]`, name)).RemoveAttr("checked")
		}
	}
	s.SetAttr("checked", "checked")
	e.page.focused = s
	e.page.record("check", e.cand.String(), describe(s), "")
	return e.page.fire(e.page.site.changeHooks(s), s)
}

func (e *element) SelectOption(ctx context.Context, value string) error {
	s, err := e.actionable(ctx, "select")
	if err != nil {
		return err
	}
	if goquery.NodeName(s) != "select" {
		return fmt.Errorf("select %s: element is not a <select>", e.cand)
	}
	options := s.Find("option")
	match := options.FilterFunction(func(_ int, o *goquery.Selection) bool {
		v, ok := o.Attr("value")
		return (ok && v == value) || strings.TrimSpace(o.Text()) == value
	}).First()
	if match.Length() == 0 {
		return fmt.Errorf("select %s: no option %q: %w", e.cand, value, wait.ErrTimeout)
	}
	options.RemoveAttr("selected")
	match.SetAttr("selected", "selected")
	e.page.focused = s
	e.page.record("select", e.cand.String(), describe(s), value)
	return e.page.fire(e.page.site.changeHooks(s), s)
}

func (e *element) TextContent(ctx context.Context) (string, error) {
	s, err := e.attached(ctx, "textContent")
	if err != nil {
		return "", err
	}
	return s.Text(), nil
}

func (e *element) AllTextContents(ctx context.Context) ([]string, error) {
	if err := e.page.usable(ctx); err != nil {
		return nil, err
	}
	texts := []string{}
	e.resolve().Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts, nil
}

func (e *element) Count(ctx context.Context) (int, error) {
	if err := e.page.usable(ctx); err != nil {
		return 0, err
	}
	return e.resolve().Length(), nil
}

func (e *element) InputValue(ctx context.Context) (string, error) {
	s, err := e.attached(ctx, "inputValue")
	if err != nil {
		return "", err
	}
	switch goquery.NodeName(s) {
	case "select":
		opt := s.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = s.Find("option").First()
		}
		if v, ok := opt.Attr("value"); ok {
			return v, nil
		}
		return strings.TrimSpace(opt.Text()), nil
	case "textarea":
		return s.Text(), nil
	case "input":
		v, _ := s.Attr("value")
		return v, nil
	default:
		return "", fmt.Errorf("inputValue %s: element is not an input, textarea or select", e.cand)
	}
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	s, err := e.attached(ctx, "getAttribute")
	if err != nil {
		return "", err
	}
	v, _ := s.Attr(name)
	return v, nil
}

func (e *element) IsVisible(ctx context.Context) (bool, error) {
	if err := e.page.usable(ctx); err != nil {
		return false, err
	}
	return visible(e.resolve()), nil
}

func (p *Page) fire(hooks []Handler, target *goquery.Selection) error {
	for _, fn := range hooks {
		if err := fn(p, target); err != nil {
			return err
		}
	}
	return nil
}
