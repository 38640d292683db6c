package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.NotContains(t, hash, "secret1")
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("secret1", first))
	assert.True(t, CheckPasswordHash("secret1", second))
}

func TestCheckPasswordHashRejectsGarbage(t *testing.T) {
	assert.False(t, CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
}
