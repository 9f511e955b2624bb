package repository

import (
	"time"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

type AuthSessionRepository struct {
	db *gorm.DB
}

func NewAuthSessionRepository(db *gorm.DB) *AuthSessionRepository {
	return &AuthSessionRepository{db: db}
}

func (r *AuthSessionRepository) Create(s *models.AuthSession) error {
	return r.db.Create(s).Error
}

func (r *AuthSessionRepository) GetByTokenID(tokenID string) (*models.AuthSession, error) {
	var s models.AuthSession
	err := r.db.Where("token_id = ?", tokenID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Revoke marks the session unusable; subsequent requests with its token fail
// even though the JWT itself is still within its expiry.
func (r *AuthSessionRepository) Revoke(tokenID string) error {
	now := time.Now()
	return r.db.Model(&models.AuthSession{}).Where("token_id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", now).Error
}

func (r *AuthSessionRepository) RevokeAllForUser(userID uint) error {
	now := time.Now()
	return r.db.Model(&models.AuthSession{}).Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}
