package auth

import (
	"testing"
	"time"

	"connectplus/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuerRoundTrip(t *testing.T) {
	issuer, err := NewIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, issuer.TTL())

	token, expiresAt, err := issuer.Issue(&types.Identity{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &types.Identity{ID: "u1", Email: "a@example.com"}, identity)
}

func TestIssuerRejectsBadTokens(t *testing.T) {
	issuer, err := NewIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	other, err := NewIssuer([]byte("other-secret"), time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.Issue(&types.Identity{ID: "u1"})
	require.NoError(t, err)

	expiredIssuer, err := NewIssuer([]byte("test-secret"), -time.Hour)
	require.NoError(t, err)
	expired, _, err := expiredIssuer.Issue(&types.Identity{ID: "u1"})
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage": "not-a-token",
		"foreign": foreign,
		"expired": expired,
	} {
		_, err := issuer.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer(nil, time.Hour)
	assert.Error(t, err)
}
