package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppit/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	token, err := GenerateToken(42, "jane", "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: "1h"}

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "first-secret", JWTExpiry: "1h"}
	token, err := GenerateToken(1, "jane", "jane@example.com")
	require.NoError(t, err)

	config.AppConfig = &config.Config{JWTSecret: "other-secret", JWTExpiry: "1h"}
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
