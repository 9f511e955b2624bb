package repository

import (
	"errors"

	"studiohq/internal/models"

	"gorm.io/gorm"
)

var ErrAlreadyCheckedIn = errors.New("booking already checked in")

type CheckinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// ClaimTx inserts the check-in row inside the caller's transaction. The unique
// index on booking_id makes the insert a claim ticket: a duplicate-key error
// means another request checked the booking in first.
func (r *CheckinRepository) ClaimTx(tx *gorm.DB, ci *models.BookingCheckin) error {
	err := tx.Create(ci).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyCheckedIn
	}
	return err
}

func (r *CheckinRepository) GetByBookingID(bookingID uint) (*models.BookingCheckin, error) {
	var ci models.BookingCheckin
	err := r.db.Where("booking_id = ?", bookingID).First(&ci).Error
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

func (r *CheckinRepository) Exists(bookingID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.BookingCheckin{}).Where("booking_id = ?", bookingID).Count(&c).Error
	return c > 0, err
}
