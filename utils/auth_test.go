package utils

import (
	"testing"

	"tastebook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 7, IsAdmin: true}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ValidateJWT("not-a-token")
	require.Error(t, err)

	user := &models.User{ID: 1}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	SetJWTSecret("rotated-secret")
	_, err = ValidateJWT(token)
	require.Error(t, err)
}
