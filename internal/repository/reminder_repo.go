package repository

import (
	"errors"
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"

	"gorm.io/gorm"
)

var ErrReminderAlreadySent = errors.New("reminder already sent")

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Claim inserts the (booking, type) row before the email goes out. The unique
// index makes concurrent or repeated sweeps collide here: a duplicate key
// means the send was already claimed, so the caller skips it. The row is
// marked claimed slightly before the provider confirms delivery; that is the
// accepted cost of at-most-one.
func (r *ReminderRepository) Claim(bookingID uint, reminderType string) (*models.ReminderSend, error) {
	rs := &models.ReminderSend{
		BookingID:    bookingID,
		ReminderType: reminderType,
		Status:       domain.ReminderStatusPending,
	}
	if err := r.db.Create(rs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReminderAlreadySent
		}
		return nil, err
	}
	return rs, nil
}

// MarkResult records the send outcome on the claimed row.
func (r *ReminderRepository) MarkResult(id uint, sendErr error) error {
	updates := map[string]interface{}{}
	if sendErr != nil {
		updates["status"] = domain.ReminderStatusFailed
		msg := sendErr.Error()
		if len(msg) > 512 {
			msg = msg[:512]
		}
		updates["error"] = msg
	} else {
		now := time.Now()
		updates["status"] = domain.ReminderStatusSent
		updates["sent_at"] = now
	}
	return r.db.Model(&models.ReminderSend{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ReminderRepository) ListByBooking(bookingID uint) ([]models.ReminderSend, error) {
	var list []models.ReminderSend
	err := r.db.Where("booking_id = ?", bookingID).Order("created_at DESC").Find(&list).Error
	return list, err
}
