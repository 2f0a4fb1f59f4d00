package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "smart-billing")

	token, expiresAt, err := m.GenerateAccessToken("cashier", "Front Desk")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cashier", claims.Username)
	assert.Equal(t, "Front Desk", claims.DisplayName)
	assert.Equal(t, "cashier", claims.Subject)
}

func TestJWTManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "smart-billing")

	other := NewJWTManager("other-secret", time.Hour, "smart-billing")
	token, _, err := other.GenerateAccessToken("cashier", "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)

	wrongIssuer := NewJWTManager("secret", time.Hour, "someone-else")
	token, _, err = wrongIssuer.GenerateAccessToken("cashier", "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)

	past := NewJWTManager("secret", time.Minute, "smart-billing")
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err = past.GenerateAccessToken("cashier", "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestParseProductID(t *testing.T) {
	id, ok := ParseProductID(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseProductID(bad)
		assert.False(t, ok, bad)
	}
}
