package auth

import (
	"testing"
	"time"

	"studiohq/config"

	"github.com/stretchr/testify/require"
)

func jwtConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour, Issuer: "studiohq"}
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := jwtConfig()
	tok, err := GenerateAccessToken(cfg, 42, "client@test.local", "CLIENT", "session-token-id", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, tok)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "client@test.local", claims.Email)
	require.Equal(t, "CLIENT", claims.Role)
	require.Equal(t, "session-token-id", claims.ID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := jwtConfig()
	tok, err := GenerateAccessToken(cfg, 42, "client@test.local", "CLIENT", "sid", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := jwtConfig()
	tok, err := GenerateAccessToken(cfg, 42, "client@test.local", "CLIENT", "sid", time.Now().Add(time.Hour))
	require.NoError(t, err)

	other := &config.JWTConfig{Secret: "different-secret", Issuer: "studiohq"}
	_, err = ParseAccessToken(other, tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
