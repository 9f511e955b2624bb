package service

import (
	"errors"
	"time"

	"studiohq/config"
	"studiohq/internal/auth"
	"studiohq/internal/domain"
	"studiohq/internal/models"
	"studiohq/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg         *config.Config
	userRepo    *repository.UserRepository
	sessionRepo *repository.AuthSessionRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, sessionRepo *repository.AuthSessionRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *AuthService) Register(email, fullName, password string) (*models.User, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		HashAlgo:     "bcrypt",
		Role:         domain.RoleClient,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", err
	}
	token, err := s.IssueSession(u)
	if err != nil {
		return u, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	token, err := s.IssueSession(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LoginWithGoogle creates or finds a user by Google ID and returns user +
// token + isNew flag. New Google users are always CLIENT.
func (s *AuthService) LoginWithGoogle(googleID, email, name string) (*models.User, string, bool, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		token, err := s.IssueSession(u)
		return u, token, false, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", false, err
	}
	existing, _ := s.userRepo.GetByEmail(email)
	if existing != nil {
		// Link Google to the existing account
		gid := googleID
		existing.GoogleID = &gid
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", false, err
		}
		token, err := s.IssueSession(existing)
		return existing, token, false, err
	}
	gid := googleID
	u = &models.User{
		Email:    email,
		FullName: name,
		GoogleID: &gid,
		Role:     domain.RoleClient,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", false, err
	}
	token, err := s.IssueSession(u)
	return u, token, true, err
}

// IssueSession creates the auth session row and the access token carrying its
// token ID. The token is only accepted while the row stays valid.
func (s *AuthService) IssueSession(u *models.User) (string, error) {
	sess := &models.AuthSession{
		UserID:    u.ID,
		TokenID:   uuid.NewString(),
		ExpiresAt: time.Now().Add(s.cfg.JWT.AccessExpiry),
	}
	if err := s.sessionRepo.Create(sess); err != nil {
		return "", err
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role, sess.TokenID, sess.ExpiresAt)
}

func (s *AuthService) Logout(tokenID string) error {
	return s.sessionRepo.Revoke(tokenID)
}

// ChangePassword updates the user's password after verifying the current one,
// then revokes all other sessions.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if u.PasswordHash == "" {
		return errors.New("account uses Google sign-in; set a password first")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	if err := s.userRepo.Update(u); err != nil {
		return err
	}
	return s.sessionRepo.RevokeAllForUser(userID)
}
