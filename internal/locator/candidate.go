package locator

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies how a candidate locates its element.
type Kind int

// Candidate kinds
const (
	// Direct matches a selector against the whole document.
	Direct Kind = iota
	// Scoped matches a selector inside every element matched by a scope selector.
	Scoped
	// Keyword matches a selector and keeps elements whose text or value
	// attribute contains a keyword, case-insensitively.
	Keyword
)

// String returns the kind name used in catalogs and diagnostics
func (k Kind) String() string {
	switch k {
	case Direct:
		return "css"
	case Scoped:
		return "within"
	case Keyword:
		return "contains"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Candidate is one concrete way to find a logical UI target
type Candidate struct {
	Kind     Kind
	Selector string
	Scope    string
	Keyword  string
}

// Candidate errors
var (
	ErrEmptySelector = errors.New("candidate selector cannot be empty")
	ErrEmptyScope    = errors.New("scoped candidate requires a scope")
	ErrEmptyKeyword  = errors.New("keyword candidate requires a keyword")
)

// CSS returns a direct selector candidate
func CSS(selector string) Candidate {
	return Candidate{Kind: Direct, Selector: selector}
}

// Within returns a candidate resolved inside scope
func Within(scope, selector string) Candidate {
	return Candidate{Kind: Scoped, Scope: scope, Selector: selector}
}

// Containing returns a candidate matching selector elements that mention keyword
func Containing(selector, keyword string) Candidate {
	return Candidate{Kind: Keyword, Selector: selector, Keyword: keyword}
}

// Validate checks that the candidate carries the fields its kind needs
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Selector) == "" {
		return ErrEmptySelector
	}
	switch c.Kind {
	case Direct:
		return nil
	case Scoped:
		if strings.TrimSpace(c.Scope) == "" {
			return ErrEmptyScope
		}
	case Keyword:
		if strings.TrimSpace(c.Keyword) == "" {
			return ErrEmptyKeyword
		}
	default:
		return fmt.Errorf("unknown candidate kind %d", int(c.Kind))
	}
	return nil
}

// String renders the candidate for logs, e.g. `within(.footer) input[type="email"]`
func (c Candidate) String() string {
	switch c.Kind {
	case Scoped:
		return fmt.Sprintf("within(%s) %s", c.Scope, c.Selector)
	case Keyword:
		return fmt.Sprintf("%s contains(%q)", c.Selector, c.Keyword)
	default:
		return c.Selector
	}
}
