package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken("user-1", "Jo Bloggs", "jo@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Jo Bloggs", claims.Name)
	assert.Equal(t, "jo@example.com", claims.Email)
}

func TestSetSecretRejectsEmpty(t *testing.T) {
	assert.Error(t, SetSecret(""))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	SetSecret("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetSecret("secret-a")
	token, err := GenerateToken("user-1", "Jo", "jo@example.com")
	require.NoError(t, err)

	SetSecret("secret-b")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
