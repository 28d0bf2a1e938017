package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "user", testSecret, 15*time.Minute)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, TokenTypeAccess, TokenType(claims))
}

func TestRefreshTokenType(t *testing.T) {
	token, expiry, err := GenerateRefreshToken(42, testSecret, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Greater(t, expiry, time.Now().Unix())

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, TokenType(claims))
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "user", testSecret, 15*time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateAccessToken(42, "user", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", testSecret)
	assert.Error(t, err)
}
