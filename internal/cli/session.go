package cli

import (
	"context"
	"fmt"

	"github.com/adyen/ecommerce-e2e/internal/config"
	"github.com/adyen/ecommerce-e2e/internal/driver"
	"github.com/adyen/ecommerce-e2e/internal/driver/pwdriver"
	"github.com/adyen/ecommerce-e2e/internal/driver/roddriver"
	"github.com/adyen/ecommerce-e2e/internal/fakestore"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
)

// OpenSession starts the browser session cfg.Driver names and returns the
// base URL journeys should start from. The html driver serves an in-process
// store whose accounts are the valid fixture users.
func OpenSession(ctx context.Context, cfg *config.SuiteConfig, layout string, fx fixtures.Set) (driver.Session, string, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		s, err := pwdriver.Launch(pwdriver.Options{
			Browser:       cfg.Browser,
			Headless:      cfg.Headless,
			ActionTimeout: cfg.ElementTimeout,
		})
		if err != nil {
			return nil, "", err
		}
		return s, cfg.BaseURL, nil

	case config.DriverRod:
		s, err := roddriver.Launch(ctx, roddriver.Options{
			Headless:      cfg.Headless,
			Stealth:       cfg.Stealth,
			ActionTimeout: cfg.ElementTimeout,
		})
		if err != nil {
			return nil, "", err
		}
		return s, cfg.BaseURL, nil

	case config.DriverHTML:
		var accounts []fakestore.Account
		for _, u := range fx.Users.ValidUsers {
			accounts = append(accounts, fakestore.Account{FirstName: "Test", LastName: "User", Email: u.Email, Password: u.Password})
		}
		store, err := fakestore.New(fakestore.Options{
			Layout:   fakestore.Layout(layout),
			Accounts: accounts,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to build html store: %w", err)
		}
		return store, store.BaseURL(), nil
	}
	return nil, "", fmt.Errorf("unsupported driver %q", cfg.Driver)
}
