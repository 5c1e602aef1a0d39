package port

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec_Valid(t *testing.T) {
	t.Parallel()

	cases := map[string][]uint16{
		"22":              {22},
		"22,80":           {22, 80},
		"80,22":           {22, 80},
		"22,22,22":        {22},
		"1-3":             {1, 2, 3},
		"3-3":             {3},
		"22, 80":          {22, 80},
		"22,80,8000-8002": {22, 80, 8000, 8001, 8002},
		"20-25,22":        {20, 21, 22, 23, 24, 25},
		"65535":           {65535},
	}
	for spec, want := range cases {
		t.Run(spec, func(t *testing.T) {
			got, err := ParseSpec(spec)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

// Token order must not matter and reparsing must be stable.
func TestParseSpec_OrderIndependentAndIdempotent(t *testing.T) {
	t.Parallel()

	a, err := ParseSpec("80,22")
	require.NoError(t, err)
	b, err := ParseSpec("22,80")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []uint16{22, 80}, a)

	c, err := ParseSpec("80,22")
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestParseSpec_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]ParseReason{
		"":        ReasonEmptyResult,
		"   ":     ReasonEmptyResult,
		"0":       ReasonOutOfRange,
		"65536":   ReasonOutOfRange,
		"70000":   ReasonOutOfRange,
		"1-70000": ReasonOutOfRange,
		"10-1":    ReasonMalformed,
		"abc":     ReasonMalformed,
		"22,":     ReasonMalformed,
		",22":     ReasonMalformed,
		"1-2-3":   ReasonMalformed,
	}
	for spec, reason := range cases {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseSpec(spec)
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, reason, pe.Reason)
		})
	}
}
