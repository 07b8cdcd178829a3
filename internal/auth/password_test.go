package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("strong-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "pbkdf2_sha256$"))

	require.True(t, VerifyPassword("strong-password", hash))
	require.False(t, VerifyPassword("wrong-password", hash))
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	first, err := HashPassword("strong-password")
	require.NoError(t, err)
	second, err := HashPassword("strong-password")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	require.False(t, VerifyPassword("x", ""))
	require.False(t, VerifyPassword("x", "plain"))
	require.False(t, VerifyPassword("x", "pbkdf2_sha256$notanumber$salt$key"))
}
