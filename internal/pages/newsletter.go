package pages

import (
	"context"
	"regexp"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmailFormat reports whether email looks like local@domain.tld
func ValidateEmailFormat(email string) bool {
	return emailFormat.MatchString(email)
}

// NewsletterPage is the footer newsletter sign-up, whichever markup the
// storefront renders it with
type NewsletterPage struct {
	pc *Context
}

// NewNewsletterPage returns the newsletter page object over pc
func NewNewsletterPage(pc *Context) *NewsletterPage {
	return &NewsletterPage{pc: pc}
}

// NavigateToNewsletterSection opens the home page and scrolls to the footer
func (n *NewsletterPage) NavigateToNewsletterSection(ctx context.Context) error {
	if err := n.pc.Navigate(ctx, ""); err != nil {
		return err
	}
	if err := n.pc.WaitForNavigation(ctx); err != nil {
		return err
	}
	if err := n.pc.Press(ctx, driver.KeyEnd); err != nil {
		n.pc.journal.Warn("navigate", "newsletter", "scroll to footer: %v", err)
	}
	return nil
}

// SubscribeToNewsletter enters email and submits it. Sign-up forms without
// a button are submitted with Enter.
func (n *NewsletterPage) SubscribeToNewsletter(ctx context.Context, email string) error {
	exec := n.pc.exec
	if _, err := exec.Fill(ctx, n.pc.Spec(newsletterInput), email); err != nil {
		return err
	}
	_, err := exec.Click(ctx, n.pc.Spec(newsletterButton), action.WithFallback(n.submitWithEnter(email)))
	return err
}

// SubscribeFromFooter opens the footer sign-up from the home page and
// subscribes email
func (n *NewsletterPage) SubscribeFromFooter(ctx context.Context, email string) error {
	if err := n.NavigateToNewsletterSection(ctx); err != nil {
		return err
	}
	return n.SubscribeToNewsletter(ctx, email)
}

func (n *NewsletterPage) submitWithEnter(email string) action.Fallback {
	return action.Fallback{
		Name:   "submit email with Enter",
		Target: footerEmailInput,
		Do: func(ctx context.Context, page driver.Page, el driver.Element) error {
			if err := el.Fill(ctx, email); err != nil {
				return err
			}
			return page.Press(ctx, driver.KeyEnter)
		},
	}
}

// NewsletterMessage returns the sign-up result, or "" if none appears
func (n *NewsletterPage) NewsletterMessage(ctx context.Context) (string, error) {
	out, err := n.pc.exec.Text(ctx, n.pc.Spec(newsletterMessage), action.Within(n.pc.slow()))
	return strings.TrimSpace(out.Value), err
}

// IsNewsletterFormVisible reports whether a sign-up form is shown
func (n *NewsletterPage) IsNewsletterFormVisible(ctx context.Context) (bool, error) {
	out, err := n.pc.exec.Present(ctx, n.pc.Spec(newsletterForm))
	return out.Value, err
}

// InputPlaceholder returns the placeholder of the sign-up input, or ""
func (n *NewsletterPage) InputPlaceholder(ctx context.Context) (string, error) {
	out, err := n.pc.exec.Attribute(ctx, n.pc.Spec(newsletterInput), "placeholder", action.Until(wait.Attached))
	return out.Value, err
}

// UnsubscribeFromNewsletter unsubscribes email through the footer link.
// Stores without an unsubscribe flow are logged, not failed.
func (n *NewsletterPage) UnsubscribeFromNewsletter(ctx context.Context, email string) (string, error) {
	exec := n.pc.exec
	link, err := exec.Click(ctx, n.pc.Spec(newsletterUnsubLink))
	if err != nil {
		return "", err
	}
	if !link.OK() {
		n.pc.journal.Warn("unsubscribe", "newsletter", "no unsubscribe link for %s", email)
		return "", nil
	}
	if err := n.pc.WaitForNavigation(ctx); err != nil {
		return "", err
	}
	filled, err := exec.Fill(ctx, n.pc.Spec(newsletterUnsubEmail), email)
	if err != nil {
		return "", err
	}
	if !filled.OK() {
		n.pc.journal.Warn("unsubscribe", "newsletter", "no unsubscribe form for %s", email)
		return "", nil
	}
	if _, err := exec.Click(ctx, n.pc.Spec(newsletterUnsubButton)); err != nil {
		return "", err
	}
	if err := n.pc.WaitForNavigation(ctx); err != nil {
		return "", err
	}
	return n.NewsletterMessage(ctx)
}
