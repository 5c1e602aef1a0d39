package netutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("127.0.0.1/32, 10.0.0.0/8", "192.168.1.0/24")
	require.NoError(t, err)
	assert.Len(t, p.Allowed, 2)
	assert.Len(t, p.Blocked, 1)

	// bare IP becomes /32
	p, err = ParsePolicy("127.0.0.1", "")
	require.NoError(t, err)
	require.Len(t, p.Allowed, 1)
	assert.Equal(t, "127.0.0.1/32", p.Allowed[0].String())

	_, err = ParsePolicy("not-a-cidr", "")
	require.Error(t, err)
}

func TestPolicyCheck_BlocklistWins(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("10.0.0.0/8", "10.1.0.0/16")
	require.NoError(t, err)

	// blocked network refuses even though the allowlist would match
	err = p.Check("10.1.2.3")
	var pe *PolicyError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "10.1.0.0/16", pe.Network)

	// with a blocklist configured, everything outside it is permitted
	assert.NoError(t, p.Check("203.0.113.9"))
}

func TestPolicyCheck_AllowlistFallback(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("127.0.0.1/32", "")
	require.NoError(t, err)

	assert.NoError(t, p.Check("127.0.0.1"))

	err = p.Check("8.8.8.8")
	var pe *PolicyError
	require.True(t, errors.As(err, &pe))
	assert.Empty(t, pe.Network)
}

func TestPolicyCheck_EmptyPermitsAll(t *testing.T) {
	t.Parallel()

	p := &Policy{}
	assert.NoError(t, p.Check("203.0.113.9"))

	var nilPolicy *Policy
	assert.NoError(t, nilPolicy.Check("203.0.113.9"))
}
