package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	s := NewSession("")
	_, ok := s.CurrentUserID()
	assert.False(t, ok)

	s.SignIn("u1")
	id, ok := s.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	s.SignOut()
	_, ok = s.CurrentUserID()
	assert.False(t, ok)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate("u1")
	require.NoError(t, err)

	session, err := issuer.SessionFromToken(token)
	require.NoError(t, err)

	id, ok := session.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenIssuer("another-secret", time.Hour)
	require.NoError(t, err)
	forged, err := other.Generate("u1")
	require.NoError(t, err)

	expiredIssuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Generate("u1")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": forged,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
