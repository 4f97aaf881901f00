package auth

import (
	"testing"

	"github.com/mvhien/learnhub/config"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(secret string) *TokenManager {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = secret
	return NewTokenManager(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	tm := newTestTokenManager("test-secret")

	token, err := tm.Generate(6, "student")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	require.Equal(t, uint(6), claims.UserID)
	require.Equal(t, "student", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := newTestTokenManager("secret-a").Generate(6, "student")
	require.NoError(t, err)

	_, err = newTestTokenManager("secret-b").Validate(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := newTestTokenManager("test-secret")
	_, err := tm.Validate("not.a.token")
	require.Error(t, err)
}
