package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(userID, "laura@example.com", "user", "secret", 1, 24)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpiresAt, time.Minute)

	claims, err := ValidateToken(pair.AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "laura@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)

	claims, err = ValidateToken(pair.RefreshToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "laura@example.com", "user", "secret", 1, 24)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "another-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}

func TestGenerateTokenPairDefaultExpiry(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), "laura@example.com", "admin", "secret", 0, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), pair.ExpiresAt, time.Minute)
}
