package pages

import (
	"context"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

// SessionState is the login state of a page, always read from the DOM
type SessionState int

const (
	Anonymous SessionState = iota
	Authenticating
	Authenticated
	AuthenticationFailed
)

func (s SessionState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthenticationFailed:
		return "authentication_failed"
	default:
		return "anonymous"
	}
}

// Credentials are what the login form takes
type Credentials struct {
	Email    string
	Password string
}

// CredentialsOf converts a login fixture
func CredentialsOf(u fixtures.User) Credentials {
	return Credentials{Email: u.Email, Password: u.Password}
}

// LoginPage is the sign-in form and the header account links
type LoginPage struct {
	pc *Context
}

// NewLoginPage returns the login page object over pc
func NewLoginPage(pc *Context) *LoginPage {
	return &LoginPage{pc: pc}
}

// NavigateToLogin follows the header "Log in" link
func (l *LoginPage) NavigateToLogin(ctx context.Context) error {
	if _, err := l.pc.exec.Click(ctx, l.pc.Spec(loginLink)); err != nil {
		return err
	}
	return l.pc.WaitForNavigation(ctx)
}

// Login submits the form. A missing email, password or submit control
// fails with *wait.TimeoutError. The outcome is read afterwards with State or
// IsLoggedIn; nothing is cached here.
func (l *LoginPage) Login(ctx context.Context, creds Credentials, rememberMe bool) error {
	log := l.pc.log.WithField("state", Authenticating)
	log.WithField("email", creds.Email).Debug("logging in")

	exec := l.pc.exec
	if _, err := exec.Fill(ctx, l.pc.Spec(loginEmail), creds.Email, action.Assertive()); err != nil {
		return err
	}
	if _, err := exec.Fill(ctx, l.pc.Spec(loginPassword), creds.Password, action.Assertive()); err != nil {
		return err
	}
	if rememberMe {
		if _, err := exec.Check(ctx, l.pc.Spec(loginRememberMe)); err != nil {
			return err
		}
	}
	if _, err := exec.Click(ctx, l.pc.Spec(loginSubmit), action.Assertive()); err != nil {
		return err
	}
	return l.pc.WaitForNavigation(ctx)
}

// IsLoggedIn reports whether the "My account" link is shown
func (l *LoginPage) IsLoggedIn(ctx context.Context) (bool, error) {
	out, err := l.pc.exec.Present(ctx, l.pc.Spec(loginAccount))
	return out.Value, err
}

// State derives the session state from what the page shows
func (l *LoginPage) State(ctx context.Context) (SessionState, error) {
	in, err := l.IsLoggedIn(ctx)
	if err != nil {
		return Anonymous, err
	}
	if in {
		return Authenticated, nil
	}
	failed, err := l.pc.exec.Present(ctx, l.pc.Spec(loginError), action.Within(l.pc.probeTimeout/2))
	if err != nil {
		return Anonymous, err
	}
	if failed.Value {
		return AuthenticationFailed, nil
	}
	return Anonymous, nil
}

// Logout follows the header "Log out" link
func (l *LoginPage) Logout(ctx context.Context) error {
	if _, err := l.pc.exec.Click(ctx, l.pc.Spec(loginLogout)); err != nil {
		return err
	}
	return l.pc.WaitForNavigation(ctx)
}

// ErrorMessage returns the first login error, or "" if none is shown
func (l *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	out, err := l.pc.exec.Text(ctx, l.pc.Spec(loginError))
	return strings.TrimSpace(out.Value), err
}

// ValidationErrors returns the validation summary text, or ""
func (l *LoginPage) ValidationErrors(ctx context.Context) (string, error) {
	out, err := l.pc.exec.Text(ctx, l.pc.Spec(loginValidation), action.Until(wait.Attached))
	return strings.TrimSpace(out.Value), err
}
