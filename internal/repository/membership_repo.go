package repository

import (
	"studiohq/internal/models"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) GetByUserID(userID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.db.Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert creates or replaces the user's single membership record.
func (r *MembershipRepository) Upsert(m *models.Membership) error {
	existing, err := r.GetByUserID(m.UserID)
	if err == nil {
		m.ID = existing.ID
		m.CreatedAt = existing.CreatedAt
		return r.db.Save(m).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(m).Error
}

func (r *MembershipRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Membership{}).Error
}
