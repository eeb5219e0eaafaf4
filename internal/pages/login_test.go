package pages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/ecommerce-e2e/internal/fakestore"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/wait"
)

func TestSessionState_String(t *testing.T) {
	tests := []struct {
		state    SessionState
		expected string
	}{
		{Anonymous, "anonymous"},
		{Authenticating, "authenticating"},
		{Authenticated, "authenticated"},
		{AuthenticationFailed, "authentication_failed"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestLoginPage_InvalidCredentials(t *testing.T) {
	users, err := fixtures.DefaultUsers()
	require.NoError(t, err)
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	login := NewLoginPage(pc)

	require.NoError(t, login.NavigateToLogin(ctx))
	require.NoError(t, login.Login(ctx, CredentialsOf(users.InvalidUsers[0]), false))

	in, err := login.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, in)

	msg, err := login.ErrorMessage(ctx)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(msg), "unsuccessful")

	state, err := login.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, AuthenticationFailed, state)
}

func TestLoginPage_EmptyCredentials(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	login := NewLoginPage(pc)

	require.NoError(t, login.NavigateToLogin(ctx))
	require.NoError(t, login.Login(ctx, Credentials{}, false))

	summary, err := login.ValidationErrors(ctx)
	require.NoError(t, err)
	assert.Contains(t, summary, fakestore.MsgEnterEmail)
}

func TestLoginPage_LoginWithoutFormFails(t *testing.T) {
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()

	err := NewLoginPage(pc).Login(ctx, Credentials{Email: "demo.shopper@example.com", Password: "secret1"}, false)
	require.Error(t, err)

	var te *wait.TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "login.email", te.Target)
	assert.Empty(t, events(pc, "click"))
}

func TestLoginPage_LoginAndLogout(t *testing.T) {
	users, err := fixtures.DefaultUsers()
	require.NoError(t, err)
	_, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	login := NewLoginPage(pc)

	state, err := login.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, Anonymous, state)

	require.NoError(t, login.NavigateToLogin(ctx))
	require.NoError(t, login.Login(ctx, CredentialsOf(users.ValidUsers[0]), true))

	state, err = login.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, Authenticated, state)

	require.NoError(t, login.Logout(ctx))
	state, err = login.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, Anonymous, state)
}
