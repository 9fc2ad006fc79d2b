package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user_1", "secret", time.Hour, "cashbook")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, "cashbook", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
