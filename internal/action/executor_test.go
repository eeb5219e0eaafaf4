package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/driver/htmldriver"
	"github.com/adyen/ecommerce-e2e/internal/locator"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

const storePage = `<html><body>
<div class="header-links">
  <a class="ico-register" href="/register">Register</a>
  <button id="b">Log in</button>
</div>
<ul class="items">
  <li class="item">Apple MacBook Pro</li>
  <li class="item">HTC One</li>
  <li class="item">Nikon D5500</li>
</ul>
<div class="banner">Free shipping</div>
<div class="hidden-note" style="display:none">secret</div>
<select id="customerCurrency"><option value="1" selected>US Dollar</option><option value="2">Euro</option></select>
<select id="currency-alt"><option value="1">US Dollar</option></select>
<input type="email" id="newsletter-email" placeholder="Enter your email here...">
</body></html>`

func newExecutor(t *testing.T) (*htmldriver.Page, *Executor) {
	t.Helper()
	site := htmldriver.NewSite("http://store.test/").Handle("/", storePage)
	p := site.Open()
	require.NoError(t, p.Navigate(context.Background(), site.BaseURL()))
	e := NewExecutor(p, WithProbeTimeout(20*time.Millisecond), WithAssertTimeout(40*time.Millisecond))
	return p, e
}

func clicks(p *htmldriver.Page) []string {
	var out []string
	for _, ev := range p.Events() {
		if ev.Action == "click" {
			out = append(out, ev.Candidate)
		}
	}
	return out
}

func TestExecutor_FirstMatchWins(t *testing.T) {
	p, e := newExecutor(t)

	spec := locator.MustNew("login button",
		locator.CSS("#a"),
		locator.CSS("#b"),
		locator.Containing("button", "log in"),
	)
	out, err := e.Click(context.Background(), spec)
	require.NoError(t, err)

	assert.True(t, out.OK())
	assert.True(t, out.Value)
	assert.Equal(t, "#b", out.Matched)
	assert.Equal(t, []string{"#b"}, clicks(p))
}

func TestExecutor_DefaultsOnExhaustion(t *testing.T) {
	_, e := newExecutor(t)
	ctx := context.Background()
	missing := locator.MustNew("missing", locator.CSS(".nope"), locator.CSS(".also-nope"))

	text, err := e.Text(ctx, missing)
	require.NoError(t, err)
	assert.Equal(t, "", text.Value)
	assert.True(t, text.Degraded)

	count, err := e.Count(ctx, missing)
	require.NoError(t, err)
	assert.Equal(t, 0, count.Value)
	assert.True(t, count.Degraded)

	list, err := e.List(ctx, missing)
	require.NoError(t, err)
	assert.NotNil(t, list.Value)
	assert.Empty(t, list.Value)

	clicked, err := e.Click(ctx, missing)
	require.NoError(t, err)
	assert.False(t, clicked.Value)
	assert.True(t, clicked.Degraded)

	present, err := e.Present(ctx, missing)
	require.NoError(t, err)
	assert.False(t, present.Value)
	assert.False(t, present.Degraded)

	// one warning per degraded call, none for the presence probe
	assert.Len(t, e.Journal().Warnings(), 4)
}

func TestExecutor_Reads(t *testing.T) {
	_, e := newExecutor(t)
	ctx := context.Background()
	items := locator.MustNew("items", locator.CSS(".product-item"), locator.Within(".items", ".item"))

	count, err := e.Count(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 3, count.Value)
	assert.Equal(t, "within(.items) .item", count.Matched)

	list, err := e.List(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple MacBook Pro", "HTC One", "Nikon D5500"}, list.Value)

	second, err := e.Text(ctx, items, Nth(1))
	require.NoError(t, err)
	assert.Equal(t, "HTC One", second.Value)

	last, err := e.Text(ctx, items, Last())
	require.NoError(t, err)
	assert.Equal(t, "Nikon D5500", last.Value)

	placeholder, err := e.Attribute(ctx, locator.MustNew("email", locator.CSS("#newsletter-email")), "placeholder")
	require.NoError(t, err)
	assert.Equal(t, "Enter your email here...", placeholder.Value)

	currency, err := e.Value(ctx, locator.MustNew("currency", locator.CSS("#customerCurrency")))
	require.NoError(t, err)
	assert.Equal(t, "1", currency.Value)
}

func TestExecutor_ProbeState(t *testing.T) {
	_, e := newExecutor(t)
	ctx := context.Background()
	note := locator.MustNew("note", locator.CSS(".hidden-note"))

	visible, err := e.Present(ctx, note)
	require.NoError(t, err)
	assert.False(t, visible.Value)

	attached, err := e.Present(ctx, note, Until(wait.Attached))
	require.NoError(t, err)
	assert.True(t, attached.Value)

	hidden, err := e.Present(ctx, note, Until(wait.Hidden), Within(5*time.Millisecond))
	require.NoError(t, err)
	assert.True(t, hidden.Value)
}

func TestExecutor_Fallbacks(t *testing.T) {
	p, e := newExecutor(t)
	ctx := context.Background()

	var ran []string
	spec := locator.MustNew("subscribe", locator.CSS("#newsletter-subscribe-button"))
	out, err := e.Fill(ctx, spec, "a@b.com",
		WithFallback(
			Fallback{Name: "missing", Target: locator.CSS(".footer input"), Do: func(context.Context, driver.Page, driver.Element) error {
				ran = append(ran, "missing")
				return nil
			}},
			Fallback{Name: "email input", Target: locator.CSS(`input[type="email"]`)},
			Fallback{Name: "never", Target: locator.CSS("#b"), Do: func(context.Context, driver.Page, driver.Element) error {
				ran = append(ran, "never")
				return nil
			}},
		),
	)
	require.NoError(t, err)
	assert.Equal(t, "fallback email input", out.Matched)
	assert.Empty(t, ran)

	v, err := p.Locate(locator.CSS("#newsletter-email")).InputValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", v)

	pressed, err := e.Click(ctx, spec, WithFallback(Fallback{
		Name:   "enter",
		Target: locator.CSS("#newsletter-email"),
		Do: func(ctx context.Context, page driver.Page, el driver.Element) error {
			return page.Press(ctx, driver.KeyEnter)
		},
	}))
	require.NoError(t, err)
	assert.True(t, pressed.Value)
	assert.Equal(t, "fallback enter", pressed.Matched)
}

func TestExecutor_MutatingTimeoutStops(t *testing.T) {
	p, e := newExecutor(t)

	spec := locator.MustNew("currency", locator.CSS("#customerCurrency"), locator.CSS("#currency-alt"))
	out, err := e.Select(context.Background(), spec, "99")
	require.NoError(t, err)
	assert.True(t, out.Degraded)
	assert.False(t, out.Value)

	for _, ev := range p.Events() {
		assert.NotEqual(t, "#currency-alt", ev.Candidate)
	}
}

func TestExecutor_Assertive(t *testing.T) {
	_, e := newExecutor(t)

	_, err := e.Text(context.Background(), locator.MustNew("result", locator.CSS(".result")), Assertive())
	require.Error(t, err)

	var te *wait.TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "result", te.Target)
	assert.ErrorIs(t, err, wait.ErrTimeout)

	out, err := e.Text(context.Background(), locator.MustNew("banner", locator.CSS(".banner")), Assertive())
	require.NoError(t, err)
	assert.Equal(t, "Free shipping", out.Value)
}

// windowPage reports every element as absent immediately and records the
// window each wait was given
type windowPage struct {
	driver.Page
	windows []time.Duration
}

func (p *windowPage) Locate(locator.Candidate) driver.Element {
	return &windowElement{page: p}
}

type windowElement struct {
	driver.Element
	page *windowPage
}

func (el *windowElement) First() driver.Element { return el }

func (el *windowElement) WaitFor(_ context.Context, _ wait.State, timeout time.Duration) error {
	el.page.windows = append(el.page.windows, timeout)
	return wait.ErrTimeout
}

func TestExecutor_WindowIsBounded(t *testing.T) {
	tests := []struct {
		name     string
		exec     []ExecutorOption
		opts     []Option
		expected time.Duration
	}{
		{"default", nil, nil, wait.ProbeTimeout},
		{"short executor window", []ExecutorOption{WithProbeTimeout(20 * time.Millisecond)}, nil, 20 * time.Millisecond},
		{"long executor window", []ExecutorOption{WithProbeTimeout(time.Minute)}, nil, wait.ProbeTimeout},
		{"long call window", nil, []Option{Within(10 * time.Second)}, wait.ProbeTimeout},
		{"short call window", nil, []Option{Within(time.Second)}, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &windowPage{}
			e := NewExecutor(p, tt.exec...)
			spec := locator.MustNew("message", locator.CSS(".result"), locator.CSS(".message"))

			out, err := e.Text(context.Background(), spec, tt.opts...)
			require.NoError(t, err)
			assert.True(t, out.Degraded)

			require.Len(t, p.windows, 2)
			for _, w := range p.windows {
				assert.Equal(t, tt.expected, w)
				assert.LessOrEqual(t, w, wait.ProbeTimeout)
			}
		})
	}
}

func TestExecutor_DriverFault(t *testing.T) {
	_, e := newExecutor(t)

	_, err := e.Fill(context.Background(), locator.MustNew("banner", locator.CSS(".banner")), "x")
	var fault *DriverFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "fill", fault.Action)
	assert.NotErrorIs(t, err, wait.ErrTimeout)
}

func TestExecutor_ClosedPageIsFault(t *testing.T) {
	p, e := newExecutor(t)
	require.NoError(t, p.Close())

	_, err := e.Count(context.Background(), locator.MustNew("items", locator.CSS(".item")))
	var fault *DriverFault
	assert.True(t, errors.As(err, &fault))
}

func TestExecutor_CancelledContext(t *testing.T) {
	_, e := newExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Click(ctx, locator.MustNew("login", locator.CSS("#b")))
	assert.ErrorIs(t, err, context.Canceled)

	var fault *DriverFault
	assert.False(t, errors.As(err, &fault))
}

func TestExecutor_ZeroSpec(t *testing.T) {
	_, e := newExecutor(t)
	_, err := e.Click(context.Background(), locator.Spec{})
	assert.ErrorIs(t, err, locator.ErrEmptySpec)
}

func TestJournal(t *testing.T) {
	j := NewJournal()
	j.Record(Diagnostic{Severity: SeverityInfo, Action: "click", Target: "x", Message: "fine"})
	j.Warn("unsubscribe", "newsletter", "unsubscribe link not found for %s", "a@b.com")

	entries := j.Entries()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Time.IsZero())
	assert.Equal(t, "[warning] unsubscribe newsletter: unsubscribe link not found for a@b.com", j.Warnings()[0].String())

	j.Reset()
	assert.Empty(t, j.Entries())
}
