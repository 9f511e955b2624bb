package repository

import (
	"studiohq/internal/models"

	"gorm.io/gorm"
)

type RewardsRepository struct {
	db *gorm.DB
}

func NewRewardsRepository(db *gorm.DB) *RewardsRepository {
	return &RewardsRepository{db: db}
}

func (r *RewardsRepository) AppendTx(tx *gorm.DB, e *models.RewardsLedgerEntry) error {
	return tx.Create(e).Error
}

// Balance is derived by summing deltas; there is no materialized rewards table.
func (r *RewardsRepository) Balance(userID uint) (int, error) {
	var sum *int
	err := r.db.Model(&models.RewardsLedgerEntry{}).
		Where("user_id = ?", userID).
		Select("SUM(delta)").Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *RewardsRepository) Recent(userID uint, limit int) ([]models.RewardsLedgerEntry, error) {
	var list []models.RewardsLedgerEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}
