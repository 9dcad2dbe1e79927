package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenPairRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, testSecret, 15, 7)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := ValidateAccessToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, AccessToken, claims.Type)

	claims, err = ValidateRefreshToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, RefreshToken, claims.Type)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, testSecret, 15, 7)
	require.NoError(t, err)

	_, err = ValidateAccessToken(refresh, testSecret)
	assert.Error(t, err)
	_, err = ValidateRefreshToken(access, testSecret)
	assert.Error(t, err)
}

func TestWrongSecretIsRejected(t *testing.T) {
	access, err := GenerateAccessToken(42, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(access, "other-secret")
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	access, err := GenerateAccessToken(42, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(access, testSecret)
	assert.Error(t, err)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.Error(t, err)
}
