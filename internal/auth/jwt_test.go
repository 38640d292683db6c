package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	token, err := signer.Generate("user-1", "PATIENT", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "PATIENT", claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestTokenSignerRejectsWrongSecret(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)
	other := NewTokenSigner("other-secret", time.Hour)

	token, err := signer.Generate("user-1", "PATIENT", "a@x.com")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestTokenSignerRejectsExpiredToken(t *testing.T) {
	signer := NewTokenSigner("test-secret", -time.Minute)

	token, err := signer.Generate("user-1", "PATIENT", "a@x.com")
	require.NoError(t, err)

	_, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestTokenSignerRejectsTamperedToken(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Hour)

	token, err := signer.Generate("user-1", "PATIENT", "a@x.com")
	require.NoError(t, err)

	_, err = signer.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestGenerateOpaqueTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := GenerateOpaqueToken()
		require.NotEmpty(t, token)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
