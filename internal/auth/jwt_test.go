package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, err := m.Generate("user-42")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Generate("user-42")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
