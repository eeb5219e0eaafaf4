package locator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptyCandidateList(t *testing.T) {
	_, err := New("newsletter.email")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySpec))
	assert.Contains(t, err.Error(), "newsletter.email")
}

func TestNew_RejectsInvalidCandidates(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		wantErr   error
	}{
		{name: "empty selector", candidate: CSS(" "), wantErr: ErrEmptySelector},
		{name: "scoped without scope", candidate: Within("", "input"), wantErr: ErrEmptyScope},
		{name: "keyword without keyword", candidate: Containing("button", ""), wantErr: ErrEmptyKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("target", CSS("#ok"), tt.candidate)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "candidate 1")
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("nothing") })
}

func TestSpec_CandidatesAreImmutable(t *testing.T) {
	input := []Candidate{CSS("#newsletter-email"), CSS("input[type='email']")}
	s := MustNew("newsletter.email", input...)

	input[0] = CSS("#mutated")
	got := s.Candidates()
	got[1] = CSS("#mutated-too")

	assert.Equal(t, "#newsletter-email", s.Primary().Selector)
	assert.Equal(t, "input[type='email']", s.Candidates()[1].Selector)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsZero())
	assert.True(t, Spec{}.IsZero())
}

func TestCandidate_String(t *testing.T) {
	assert.Equal(t, "#Email", CSS("#Email").String())
	assert.Equal(t, `within(.footer) input[type="email"]`, Within(".footer", `input[type="email"]`).String())
	assert.Equal(t, `button contains("Subscribe")`, Containing("button", "Subscribe").String())
	assert.Equal(t, "contains", Keyword.String())
}
