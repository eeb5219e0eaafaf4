// Package fixtures holds the static inputs scenarios are driven with. The
// defaults are embedded; a directory of the same JSON files can replace
// them.
package fixtures

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Category keys fixture records
type Category string

const (
	Valid   Category = "valid"
	Invalid Category = "invalid"
	Edge    Category = "edge"
)

// File names shared by the embedded defaults and fixture directories
const (
	UsersFile         = "users.json"
	SearchesFile      = "searches.json"
	RegistrationsFile = "registrations.json"
)

var ErrUnknownCategory = errors.New("unknown fixture category")

//go:embed data/*.json
var embedded embed.FS

// User is a set of login credentials
type User struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Description string `json:"description,omitempty"`
}

// Users groups login fixtures by category
type Users struct {
	ValidUsers   []User `json:"validUsers"`
	InvalidUsers []User `json:"invalidUsers"`
	EdgeCases    []User `json:"edgeCases"`
}

// Search is a quick search input
type Search struct {
	SearchTerm      string `json:"searchTerm"`
	ExpectedResults bool   `json:"expectedResults"`
	Description     string `json:"description,omitempty"`
}

// AdvancedSearch is a filter set for the advanced search form. Empty fields
// are left untouched.
type AdvancedSearch struct {
	SearchTerm           string `json:"searchTerm"`
	Category             string `json:"category"`
	Manufacturer         string `json:"manufacturer"`
	PriceFrom            string `json:"priceFrom"`
	PriceTo              string `json:"priceTo"`
	SearchInDescriptions bool   `json:"searchInDescriptions"`
}

// Searches groups search fixtures
type Searches struct {
	ValidSearches    []Search         `json:"validSearches"`
	InvalidSearches  []Search         `json:"invalidSearches"`
	AdvancedSearches []AdvancedSearch `json:"advancedSearches"`
	EdgeCases        []Search         `json:"edgeCases"`
}

// Registration is the registration form input. An empty Email is replaced
// with a unique address by WithUniqueEmail.
type Registration struct {
	Gender          string `json:"gender,omitempty"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Day             string `json:"day,omitempty"`
	Month           string `json:"month,omitempty"`
	Year            string `json:"year,omitempty"`
	Email           string `json:"email"`
	Company         string `json:"company,omitempty"`
	Newsletter      bool   `json:"newsletter"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ExpectedError   string `json:"expectedError,omitempty"`
}

// WithUniqueEmail returns a copy with a generated email if none is set
func (r Registration) WithUniqueEmail() Registration {
	if r.Email == "" {
		r.Email = RandomEmail()
	}
	return r
}

// Registrations groups registration fixtures
type Registrations struct {
	ValidRegistrations   []Registration `json:"validRegistrations"`
	InvalidRegistrations []Registration `json:"invalidRegistrations"`
	EdgeCases            []Registration `json:"edgeCases"`
}

// ByCategory returns a copy of the users in c
func (u Users) ByCategory(c Category) ([]User, error) {
	switch c {
	case Valid:
		return clone(u.ValidUsers), nil
	case Invalid:
		return clone(u.InvalidUsers), nil
	case Edge:
		return clone(u.EdgeCases), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

// ByCategory returns a copy of the quick searches in c
func (s Searches) ByCategory(c Category) ([]Search, error) {
	switch c {
	case Valid:
		return clone(s.ValidSearches), nil
	case Invalid:
		return clone(s.InvalidSearches), nil
	case Edge:
		return clone(s.EdgeCases), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

// ByCategory returns a copy of the registrations in c
func (r Registrations) ByCategory(c Category) ([]Registration, error) {
	switch c {
	case Valid:
		return clone(r.ValidRegistrations), nil
	case Invalid:
		return clone(r.InvalidRegistrations), nil
	case Edge:
		return clone(r.EdgeCases), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
}

func clone[T any](in []T) []T {
	return append([]T{}, in...)
}

var (
	defaultUsers         = sync.OnceValues(func() (Users, error) { return decodeEmbedded[Users](UsersFile) })
	defaultSearches      = sync.OnceValues(func() (Searches, error) { return decodeEmbedded[Searches](SearchesFile) })
	defaultRegistrations = sync.OnceValues(func() (Registrations, error) { return decodeEmbedded[Registrations](RegistrationsFile) })
)

// DefaultUsers returns the embedded login fixtures
func DefaultUsers() (Users, error) { return defaultUsers() }

// DefaultSearches returns the embedded search fixtures
func DefaultSearches() (Searches, error) { return defaultSearches() }

// DefaultRegistrations returns the embedded registration fixtures
func DefaultRegistrations() (Registrations, error) { return defaultRegistrations() }

func decodeEmbedded[T any](name string) (T, error) {
	f, err := embedded.Open("data/" + name)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to open embedded %s: %w", name, err)
	}
	defer f.Close()
	return decode[T](f, name)
}

func decode[T any](r io.Reader, name string) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return v, nil
}

// LoadUsers decodes login fixtures from r
func LoadUsers(r io.Reader) (Users, error) {
	return decode[Users](r, UsersFile)
}

// LoadSearches decodes search fixtures from r
func LoadSearches(r io.Reader) (Searches, error) {
	return decode[Searches](r, SearchesFile)
}

// LoadRegistrations decodes registration fixtures from r
func LoadRegistrations(r io.Reader) (Registrations, error) {
	return decode[Registrations](r, RegistrationsFile)
}

// Set is every fixture group
type Set struct {
	Users         Users
	Searches      Searches
	Registrations Registrations
}

// Defaults returns the embedded fixture set
func Defaults() (Set, error) {
	var set Set
	var err error
	if set.Users, err = DefaultUsers(); err != nil {
		return set, err
	}
	if set.Searches, err = DefaultSearches(); err != nil {
		return set, err
	}
	if set.Registrations, err = DefaultRegistrations(); err != nil {
		return set, err
	}
	return set, nil
}

// LoadDir reads a fixture set from dir. Missing files fall back to the
// embedded defaults.
func LoadDir(dir string) (Set, error) {
	set, err := Defaults()
	if err != nil {
		return set, err
	}
	if err := loadFile(dir, UsersFile, LoadUsers, &set.Users); err != nil {
		return set, err
	}
	if err := loadFile(dir, SearchesFile, LoadSearches, &set.Searches); err != nil {
		return set, err
	}
	if err := loadFile(dir, RegistrationsFile, LoadRegistrations, &set.Registrations); err != nil {
		return set, err
	}
	return set, nil
}

func loadFile[T any](dir, name string, load func(io.Reader) (T, error), dst *T) error {
	f, err := os.Open(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer f.Close()

	v, err := load(f)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
