package fixtures

import (
	"errors"
	"fmt"
)

var ErrInvalidFixture = errors.New("invalid fixture")

// Validate checks the structural expectations scenarios rely on
func (s Set) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidFixture, fmt.Sprintf(format, args...)))
	}

	if len(s.Users.ValidUsers) == 0 {
		add("%s: validUsers is empty", UsersFile)
	}
	for i, u := range s.Users.ValidUsers {
		if u.Email == "" || u.Password == "" {
			add("%s: validUsers[%d] needs email and password", UsersFile, i)
		}
	}
	if len(s.Users.InvalidUsers) == 0 {
		add("%s: invalidUsers is empty", UsersFile)
	}

	if len(s.Searches.ValidSearches) == 0 {
		add("%s: validSearches is empty", SearchesFile)
	}
	for i, q := range s.Searches.ValidSearches {
		if q.SearchTerm == "" {
			add("%s: validSearches[%d] has no searchTerm", SearchesFile, i)
		}
	}
	for i, q := range s.Searches.InvalidSearches {
		if q.ExpectedResults {
			add("%s: invalidSearches[%d] expects results", SearchesFile, i)
		}
	}

	if len(s.Registrations.ValidRegistrations) == 0 {
		add("%s: validRegistrations is empty", RegistrationsFile)
	}
	for i, r := range s.Registrations.ValidRegistrations {
		if r.FirstName == "" || r.LastName == "" || r.Password == "" {
			add("%s: validRegistrations[%d] is missing a required field", RegistrationsFile, i)
		}
		if r.Password != r.ConfirmPassword {
			add("%s: validRegistrations[%d] passwords differ", RegistrationsFile, i)
		}
	}
	for i, r := range s.Registrations.InvalidRegistrations {
		if r.ExpectedError == "" {
			add("%s: invalidRegistrations[%d] has no expectedError", RegistrationsFile, i)
		}
	}

	return errors.Join(errs...)
}
