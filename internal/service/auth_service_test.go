package service

import (
	"testing"
	"time"

	"studiohq/config"
	"studiohq/internal/auth"
	"studiohq/internal/domain"
	"studiohq/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) (*AuthService, *config.Config, *repository.AuthSessionRepository) {
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour, Issuer: "studiohq"},
	}
	sessionRepo := repository.NewAuthSessionRepository(db)
	return NewAuthService(cfg, repository.NewUserRepository(db), sessionRepo), cfg, sessionRepo
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc, cfg, _ := newAuthService(db)

	u, token, err := svc.Register("new@test.local", "New Client", "hunter22")
	require.NoError(t, err)
	require.Equal(t, domain.RoleClient, u.Role)
	require.NotEmpty(t, token)

	claims, err := auth.ParseAccessToken(&cfg.JWT, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)

	_, _, err = svc.Register("new@test.local", "Dup", "hunter22")
	require.ErrorIs(t, err, ErrEmailExists)

	_, _, err = svc.Login("new@test.local", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCreds)

	_, token2, err := svc.Login("new@test.local", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token2)
}

func TestLogoutRevokesSession(t *testing.T) {
	db := newTestDB(t)
	svc, cfg, sessionRepo := newAuthService(db)

	_, token, err := svc.Register("new@test.local", "New Client", "hunter22")
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(&cfg.JWT, token)
	require.NoError(t, err)

	sess, err := sessionRepo.GetByTokenID(claims.ID)
	require.NoError(t, err)
	require.True(t, sess.Valid(time.Now()))

	require.NoError(t, svc.Logout(claims.ID))

	sess, err = sessionRepo.GetByTokenID(claims.ID)
	require.NoError(t, err)
	require.False(t, sess.Valid(time.Now()))
}

func TestChangePasswordRevokesAllSessions(t *testing.T) {
	db := newTestDB(t)
	svc, cfg, sessionRepo := newAuthService(db)

	u, token, err := svc.Register("new@test.local", "New Client", "hunter22")
	require.NoError(t, err)
	_, token2, err := svc.Login("new@test.local", "hunter22")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(u.ID, "wrong", "newpass99"), ErrInvalidCreds)
	require.NoError(t, svc.ChangePassword(u.ID, "hunter22", "newpass99"))

	for _, tok := range []string{token, token2} {
		claims, err := auth.ParseAccessToken(&cfg.JWT, tok)
		require.NoError(t, err)
		sess, err := sessionRepo.GetByTokenID(claims.ID)
		require.NoError(t, err)
		require.False(t, sess.Valid(time.Now()))
	}

	_, _, err = svc.Login("new@test.local", "newpass99")
	require.NoError(t, err)
}

func TestLoginWithGoogleLinksExistingAccount(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newAuthService(db)

	u, _, err := svc.Register("linked@test.local", "Linked", "hunter22")
	require.NoError(t, err)

	got, token, isNew, err := svc.LoginWithGoogle("goog-123", "linked@test.local", "Linked")
	require.NoError(t, err)
	require.False(t, isNew)
	require.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, token)

	// A fresh Google identity creates a client account.
	created, _, isNew, err := svc.LoginWithGoogle("goog-456", "fresh@test.local", "Fresh")
	require.NoError(t, err)
	require.True(t, isNew)
	require.Equal(t, domain.RoleClient, created.Role)
}
