package repository

import (
	"errors"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

var ErrNoActiveWaiver = errors.New("no active waiver")

type WaiverRepository struct {
	db *gorm.DB
}

func NewWaiverRepository(db *gorm.DB) *WaiverRepository {
	return &WaiverRepository{db: db}
}

func (r *WaiverRepository) Create(w *models.Waiver) error {
	return r.db.Create(w).Error
}

// GetActive returns the single designated waiver: the most recently created
// row flagged active.
func (r *WaiverRepository) GetActive() (*models.Waiver, error) {
	var w models.Waiver
	err := r.db.Where("active = ?", true).Order("created_at DESC").First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveWaiver
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Sign writes one signature row per attempt; repeated signings by the same
// user simply add rows.
func (r *WaiverRepository) Sign(sig *models.WaiverSignature) error {
	return r.db.Create(sig).Error
}

// HasSigned reports whether at least one signature row exists for the user
// against the active waiver. No active waiver means nobody has signed.
func (r *WaiverRepository) HasSigned(userID uint) (bool, error) {
	w, err := r.GetActive()
	if errors.Is(err, ErrNoActiveWaiver) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var c int64
	err = r.db.Model(&models.WaiverSignature{}).
		Where("waiver_id = ? AND user_id = ?", w.ID, userID).Count(&c).Error
	return c > 0, err
}
