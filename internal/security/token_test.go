package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, "tests", time.Hour)

	token, err := m.GenerateAccessToken("user-42", []string{"owner"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, []string{"owner"}, claims.Roles)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testSecret, "tests", time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", "tests", time.Hour)
		token, err := other.GenerateAccessToken("user-42", nil)
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		other := NewTokenManager(testSecret, "someone-else", time.Hour)
		token, err := other.GenerateAccessToken("user-42", nil)
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := &tokenManager{secret: []byte(testSecret), issuer: "tests", ttl: time.Minute, now: func() time.Time {
			return time.Now().Add(-2 * time.Hour)
		}}
		token, err := expired.GenerateAccessToken("user-42", nil)
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Wrong type", func(t *testing.T) {
		claims := UserClaims{
			UserID: "user-42",
			Type:   "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "tests",
				Audience:  jwt.ClaimStrings{accessAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
}
