package repository

import (
	"time"

	"studiohq/internal/domain"
	"studiohq/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(b *models.Booking) error {
	return r.db.Create(b).Error
}

func (r *BookingRepository) CreateTx(tx *gorm.DB, b *models.Booking) error {
	return tx.Create(b).Error
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.Preload("Session").Preload("Session.ClassType").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetActiveByUserAndSession returns the user's BOOKED booking for the session, if any.
func (r *BookingRepository) GetActiveByUserAndSession(userID, sessionID uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.Where("user_id = ? AND session_id = ? AND status = ?", userID, sessionID, domain.BookingStatusBooked).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) CountBookedBySession(sessionID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Booking{}).
		Where("session_id = ? AND status = ?", sessionID, domain.BookingStatusBooked).Count(&c).Error
	return c, err
}

// CancelIfBooked flips BOOKED -> CANCELLED only if the row is still BOOKED at
// write time. Returns false when zero rows were affected, i.e. a concurrent
// request already cancelled it. This conditional update is what gates the
// refund: it closes the race between the pre-check read and the write.
func (r *BookingRepository) CancelIfBooked(tx *gorm.DB, bookingID uint, at time.Time) (bool, error) {
	res := tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, domain.BookingStatusBooked).
		Updates(map[string]interface{}{
			"status":       domain.BookingStatusCancelled,
			"cancelled_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRepository) ListByUser(userID uint, limit, offset int) ([]models.Booking, error) {
	var list []models.Booking
	err := r.db.Where("user_id = ?", userID).
		Preload("Session").Preload("Session.ClassType").
		Order("booked_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *BookingRepository) ListBySession(sessionID uint) ([]models.Booking, error) {
	var list []models.Booking
	err := r.db.Where("session_id = ?", sessionID).Preload("User").Order("booked_at ASC").Find(&list).Error
	return list, err
}

func (r *BookingRepository) ListAll(status string, limit, offset int) ([]models.Booking, error) {
	var list []models.Booking
	q := r.db.Preload("Session").Preload("Session.ClassType").Preload("User").
		Order("booked_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// ListForReminder returns BOOKED bookings whose session start falls in the
// window, with session and user preloaded for the email.
func (r *BookingRepository) ListForReminder(windowStart, windowEnd time.Time) ([]models.Booking, error) {
	var list []models.Booking
	err := r.db.Joins("JOIN sessions ON sessions.id = bookings.session_id").
		Where("bookings.status = ? AND sessions.starts_at BETWEEN ? AND ?",
			domain.BookingStatusBooked, windowStart, windowEnd).
		Preload("Session").Preload("Session.ClassType").Preload("User").
		Find(&list).Error
	return list, err
}

// SessionBookedCounts returns booked-count per session id for the given ids.
func (r *BookingRepository) SessionBookedCounts(sessionIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}
	type row struct {
		SessionID uint
		N         int64
	}
	var rows []row
	err := r.db.Model(&models.Booking{}).
		Select("session_id, COUNT(*) as n").
		Where("session_id IN ? AND status = ?", sessionIDs, domain.BookingStatusBooked).
		Group("session_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.SessionID] = rw.N
	}
	return counts, nil
}
