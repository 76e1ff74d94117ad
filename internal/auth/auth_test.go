package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	tok, err := issuer.Sign("user-1", "a@b.com", "USER")
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("secret-a").Sign("user-1", "a@b.com", "USER")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("s").Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestNewOTPFormat(t *testing.T) {
	six := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		otp := NewOTP()
		assert.True(t, six.MatchString(otp), "otp %q", otp)
	}
}
