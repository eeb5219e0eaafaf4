package pages

import (
	"context"
	"strings"

	"github.com/adyen/ecommerce-e2e/internal/action"
	"github.com/adyen/ecommerce-e2e/internal/fixtures"
	"github.com/adyen/ecommerce-e2e/internal/locator"
)

// RegistrationPage is the customer registration form
type RegistrationPage struct {
	pc *Context
}

// NewRegistrationPage returns the registration page object over pc
func NewRegistrationPage(pc *Context) *RegistrationPage {
	return &RegistrationPage{pc: pc}
}

// NavigateToRegister follows the header "Register" link
func (r *RegistrationPage) NavigateToRegister(ctx context.Context) error {
	if _, err := r.pc.exec.Click(ctx, r.pc.Spec(regLink)); err != nil {
		return err
	}
	return r.pc.WaitForNavigation(ctx)
}

// Register fills the form from reg and submits it. Optional fields that
// are empty in reg are left untouched; a missing required field or submit
// button fails with *wait.TimeoutError.
func (r *RegistrationPage) Register(ctx context.Context, reg fixtures.Registration) error {
	exec := r.pc.exec

	switch strings.ToLower(reg.Gender) {
	case "male":
		if _, err := exec.Check(ctx, r.pc.Spec(regGenderMale)); err != nil {
			return err
		}
	case "female":
		if _, err := exec.Check(ctx, r.pc.Spec(regGenderFemale)); err != nil {
			return err
		}
	}

	fill := func(spec locator.Spec, v string, opts ...action.Option) error {
		_, err := exec.Fill(ctx, r.pc.Spec(spec), v, opts...)
		return err
	}
	choose := func(spec locator.Spec, v string) error {
		if v == "" {
			return nil
		}
		_, err := exec.Select(ctx, r.pc.Spec(spec), v)
		return err
	}

	if err := fill(regFirstName, reg.FirstName, action.Assertive()); err != nil {
		return err
	}
	if err := fill(regLastName, reg.LastName, action.Assertive()); err != nil {
		return err
	}
	if err := choose(regDay, reg.Day); err != nil {
		return err
	}
	if err := choose(regMonth, reg.Month); err != nil {
		return err
	}
	if err := choose(regYear, reg.Year); err != nil {
		return err
	}
	if err := fill(regEmail, reg.Email, action.Assertive()); err != nil {
		return err
	}
	if reg.Company != "" {
		if err := fill(regCompany, reg.Company); err != nil {
			return err
		}
	}
	if reg.Newsletter {
		if _, err := exec.Check(ctx, r.pc.Spec(regNewsletter)); err != nil {
			return err
		}
	}
	if err := fill(regPassword, reg.Password, action.Assertive()); err != nil {
		return err
	}
	if err := fill(regConfirmPassword, reg.ConfirmPassword, action.Assertive()); err != nil {
		return err
	}

	if _, err := exec.Click(ctx, r.pc.Spec(regSubmit), action.Assertive()); err != nil {
		return err
	}
	return r.pc.WaitForNavigation(ctx)
}

// SuccessMessage returns the registration result, or "" if it never shows
func (r *RegistrationPage) SuccessMessage(ctx context.Context) (string, error) {
	out, err := r.pc.exec.Text(ctx, r.pc.Spec(regSuccess), action.Within(r.pc.slow()))
	return strings.TrimSpace(out.Value), err
}

// ErrorMessages returns every field and summary error shown, trimmed
func (r *RegistrationPage) ErrorMessages(ctx context.Context) ([]string, error) {
	out, err := r.pc.exec.List(ctx, r.pc.Spec(regErrors))
	return trimAll(out.Value), err
}

// ClickContinue follows the "Continue" button of the result page
func (r *RegistrationPage) ClickContinue(ctx context.Context) error {
	if _, err := r.pc.exec.Click(ctx, r.pc.Spec(regContinue)); err != nil {
		return err
	}
	return r.pc.WaitForNavigation(ctx)
}
