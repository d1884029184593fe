package utils

import (
	"testing"

	"github.com/jossyfresh/EduAssist/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	require.NoError(t, config.InitTest())

	token, err := GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	require.NoError(t, config.InitTest())

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	require.NoError(t, config.InitTest())

	token, err := GenerateToken("user-123")
	require.NoError(t, err)

	original := config.GlobalConfig.JWT.Secret
	config.GlobalConfig.JWT.Secret = "a-different-secret"
	defer func() { config.GlobalConfig.JWT.Secret = original }()

	_, err = ParseToken(token)
	assert.Error(t, err)
}
