package scenario

import (
	"fmt"
	"strings"
)

// AssertionFailure is a journey check that did not hold
type AssertionFailure struct {
	What     string
	Expected string
	Actual   string
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.What, e.Expected, e.Actual)
}

// Equal fails unless actual == expected
func Equal[T comparable](what string, expected, actual T) error {
	if expected == actual {
		return nil
	}
	return &AssertionFailure{What: what, Expected: fmt.Sprintf("%v", expected), Actual: fmt.Sprintf("%v", actual)}
}

// True fails unless cond holds
func True(what string, cond bool) error {
	return Equal(what, true, cond)
}

// False fails if cond holds
func False(what string, cond bool) error {
	return Equal(what, false, cond)
}

// Contains fails unless s contains substr, ignoring case
func Contains(what, s, substr string) error {
	if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
		return nil
	}
	return &AssertionFailure{What: what, Expected: fmt.Sprintf("text containing %q", substr), Actual: fmt.Sprintf("%q", s)}
}

// AtLeast fails if actual < min
func AtLeast(what string, min, actual int) error {
	if actual >= min {
		return nil
	}
	return &AssertionFailure{What: what, Expected: fmt.Sprintf("at least %d", min), Actual: fmt.Sprintf("%d", actual)}
}

// NotEmpty fails on an empty or blank string
func NotEmpty(what, s string) error {
	if strings.TrimSpace(s) != "" {
		return nil
	}
	return &AssertionFailure{What: what, Expected: "non-empty text", Actual: `""`}
}
