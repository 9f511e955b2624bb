package repository

import (
	"errors"
	"time"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

type IntakeRepository struct {
	db *gorm.DB
}

func NewIntakeRepository(db *gorm.DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

// Upsert overwrites the stored payload for (user, form type) rather than
// accumulating history: resubmission replaces the prior submission.
func (r *IntakeRepository) Upsert(userID uint, formType, payload string, at time.Time) (*models.IntakeSubmission, error) {
	var sub models.IntakeSubmission
	err := r.db.Where("user_id = ? AND form_type = ?", userID, formType).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.IntakeSubmission{
			UserID:      userID,
			FormType:    formType,
			Payload:     payload,
			SubmittedAt: at,
		}
		if err := r.db.Create(&sub).Error; err != nil {
			return nil, err
		}
		return &sub, nil
	}
	if err != nil {
		return nil, err
	}
	sub.Payload = payload
	sub.SubmittedAt = at
	if err := r.db.Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *IntakeRepository) GetByUserAndForm(userID uint, formType string) (*models.IntakeSubmission, error) {
	var sub models.IntakeSubmission
	err := r.db.Where("user_id = ? AND form_type = ?", userID, formType).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *IntakeRepository) ListByUser(userID uint) ([]models.IntakeSubmission, error) {
	var list []models.IntakeSubmission
	err := r.db.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&list).Error
	return list, err
}

func (r *IntakeRepository) ListAll(limit, offset int) ([]models.IntakeSubmission, error) {
	var list []models.IntakeSubmission
	err := r.db.Preload("User").Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
