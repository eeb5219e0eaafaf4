package locator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
newsletter.email:
  - css: "input[type=email]"
    within: ".footer"
  - css: "#newsletter-email"
newsletter.subscribe:
  - css: "button"
    contains: "Subscribe"
`

func TestLoadCatalog_OverridesByName(t *testing.T) {
	cat, err := LoadCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	builtin := MustNew("newsletter.email", CSS("#newsletter-email"))
	resolved := cat.Resolve(builtin)

	require.Equal(t, 2, resolved.Len())
	assert.Equal(t, Within(".footer", "input[type=email]"), resolved.Primary())
	assert.Equal(t, []string{"newsletter.email", "newsletter.subscribe"}, cat.Names())

	untouched := MustNew("login.email", CSS("#Email"))
	assert.Equal(t, untouched, cat.Resolve(untouched))
}

func TestLoadCatalog_RejectsEmptyLists(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader("login.email: []\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySpec)
}

func TestLoadCatalog_EmptyDocument(t *testing.T) {
	cat, err := LoadCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cat.Names())
}

func TestNilCatalog_ResolvesToInput(t *testing.T) {
	var cat *Catalog
	s := MustNew("cart.items", CSS(".cart-item-row"))
	assert.Equal(t, s, cat.Resolve(s))
	assert.Nil(t, cat.Names())
}

func TestMarshalCatalog_ReloadsToSameSpecs(t *testing.T) {
	specs := []Spec{
		MustNew("newsletter.subscribe", CSS("#newsletter-subscribe-button"), Containing("button", "Subscribe")),
		MustNew("newsletter.email", CSS("#newsletter-email"), Within(".footer", "input[type='email']")),
	}

	out, err := MarshalCatalog(specs)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(out), "newsletter.email"), strings.Index(string(out), "newsletter.subscribe"))

	cat, err := LoadCatalog(bytes.NewReader(out))
	require.NoError(t, err)
	for _, s := range specs {
		assert.Equal(t, s.Candidates(), cat.Resolve(MustNew(s.Name(), CSS("x"))).Candidates())
	}
}
