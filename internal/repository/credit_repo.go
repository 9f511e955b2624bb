package repository

import (
	"errors"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

var ErrInsufficientCredits = errors.New("insufficient credits")

type CreditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

// ApplyDelta appends a ledger entry and updates the materialized balance as
// one transaction. A delta that would drive the balance negative fails with
// ErrInsufficientCredits and writes nothing. Grants, refunds and consumption
// all go through here; only the reason differs.
func (r *CreditRepository) ApplyDelta(userID, creditTypeID uint, delta int, reason string, actorID *uint) (int, error) {
	var newBalance int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		newBalance, err = r.ApplyDeltaTx(tx, userID, creditTypeID, delta, reason, actorID)
		return err
	})
	return newBalance, err
}

// ApplyDeltaTx is ApplyDelta running inside a caller-owned transaction, so the
// booking flow can make deduction and booking insert atomic.
func (r *CreditRepository) ApplyDeltaTx(tx *gorm.DB, userID, creditTypeID uint, delta int, reason string, actorID *uint) (int, error) {
	var bal models.CreditBalance
	err := tx.Where("user_id = ? AND credit_type_id = ?", userID, creditTypeID).First(&bal).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if delta < 0 {
			return 0, ErrInsufficientCredits
		}
		bal = models.CreditBalance{UserID: userID, CreditTypeID: creditTypeID, Balance: delta}
		if err := tx.Create(&bal).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	default:
		// Conditional increment: the balance check happens at write time, so a
		// concurrent deduction that lands first makes this one fail instead of
		// persisting a negative balance.
		res := tx.Model(&models.CreditBalance{}).
			Where("id = ? AND balance + ? >= 0", bal.ID, delta).
			Update("balance", gorm.Expr("balance + ?", delta))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, ErrInsufficientCredits
		}
		if err := tx.First(&bal, bal.ID).Error; err != nil {
			return 0, err
		}
	}
	entry := models.CreditLedgerEntry{
		UserID:       userID,
		CreditTypeID: creditTypeID,
		Delta:        delta,
		Reason:       reason,
		ActorID:      actorID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, err
	}
	return bal.Balance, nil
}

func (r *CreditRepository) BalancesByUser(userID uint) ([]models.CreditBalance, error) {
	var list []models.CreditBalance
	err := r.db.Where("user_id = ?", userID).Preload("CreditType").Find(&list).Error
	return list, err
}

func (r *CreditRepository) Balance(userID, creditTypeID uint) (int, error) {
	var bal models.CreditBalance
	err := r.db.Where("user_id = ? AND credit_type_id = ?", userID, creditTypeID).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bal.Balance, nil
}

func (r *CreditRepository) Ledger(userID *uint, limit, offset int) ([]models.CreditLedgerEntry, error) {
	var list []models.CreditLedgerEntry
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *CreditRepository) ListActiveTypes() ([]models.CreditType, error) {
	var list []models.CreditType
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *CreditRepository) GetType(id uint) (*models.CreditType, error) {
	var ct models.CreditType
	err := r.db.First(&ct, id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// FirstFundedType returns the first active credit type (alphabetical by name)
// for which the user holds a positive balance, or nil when none exists.
func (r *CreditRepository) FirstFundedType(userID uint) (*models.CreditType, error) {
	types, err := r.ListActiveTypes()
	if err != nil {
		return nil, err
	}
	for i := range types {
		bal, err := r.Balance(userID, types[i].ID)
		if err != nil {
			return nil, err
		}
		if bal > 0 {
			return &types[i], nil
		}
	}
	return nil, nil
}
