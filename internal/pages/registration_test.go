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

func TestRegistrationPage_Register(t *testing.T) {
	regs, err := fixtures.DefaultRegistrations()
	require.NoError(t, err)
	store, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()
	page := NewRegistrationPage(pc)

	reg := regs.ValidRegistrations[0].WithUniqueEmail()
	require.NoError(t, page.NavigateToRegister(ctx))
	require.NoError(t, page.Register(ctx, reg))

	msg, err := page.SuccessMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, fakestore.MsgRegistered, msg)
	assert.True(t, store.HasAccount(reg.Email))
	assert.Equal(t, reg.Newsletter, store.Subscribed(reg.Email))

	require.NoError(t, page.ClickContinue(ctx))
	in, err := NewLoginPage(pc).IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, in)
}

func TestRegistrationPage_RegisterWithoutFormFails(t *testing.T) {
	regs, err := fixtures.DefaultRegistrations()
	require.NoError(t, err)
	store, pc := newShop(t, fakestore.LayoutStandard)
	ctx := context.Background()

	reg := regs.ValidRegistrations[0].WithUniqueEmail()
	err = NewRegistrationPage(pc).Register(ctx, reg)

	var te *wait.TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "registration.first_name", te.Target)
	assert.False(t, store.HasAccount(reg.Email))
}

func TestRegistrationPage_InvalidRegistrations(t *testing.T) {
	regs, err := fixtures.DefaultRegistrations()
	require.NoError(t, err)

	for _, reg := range regs.InvalidRegistrations {
		t.Run(reg.ExpectedError, func(t *testing.T) {
			store, pc := newShop(t, fakestore.LayoutStandard)
			ctx := context.Background()
			page := NewRegistrationPage(pc)

			reg := reg.WithUniqueEmail()
			require.NoError(t, page.NavigateToRegister(ctx))
			require.NoError(t, page.Register(ctx, reg))

			errs, err := page.ErrorMessages(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, errs)
			assert.Contains(t, strings.ToLower(strings.Join(errs, " ")), strings.ToLower(reg.ExpectedError))

			msg, err := page.SuccessMessage(ctx)
			require.NoError(t, err)
			assert.Empty(t, msg)
			if reg.ExpectedError != "already exists" {
				assert.False(t, store.HasAccount(reg.Email))
			}
		})
	}
}
