package models

import (
	"time"
)

// Booking has exactly one status transition: BOOKED -> CANCELLED, enforced via
// a conditional update in the repository. At most one BOOKED booking per
// (user, session) at a time.
type Booking struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SessionID    uint       `gorm:"not null;index" json:"session_id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Status       string     `gorm:"size:20;not null;index" json:"status"` // BOOKED | CANCELLED
	CreditTypeID *uint      `json:"credit_type_id,omitempty"`             // nil when covered by an unlimited membership
	BookedAt     time.Time  `gorm:"not null" json:"booked_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Session Session `gorm:"foreignKey:SessionID" json:"session"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingCheckin is unique on booking id: the row's existence is the
// "checked in at most once" claim ticket.
type BookingCheckin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookingID   uint      `gorm:"uniqueIndex;not null" json:"booking_id"`
	CheckedInAt time.Time `gorm:"not null" json:"checked_in_at"`
	ActorID     *uint     `json:"actor_id,omitempty"` // admin who recorded the check-in

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`
}

func (BookingCheckin) TableName() string {
	return "booking_checkins"
}

// ReminderSend deduplicates reminder delivery per (booking, type): the insert
// claims the send before the email goes out, and a duplicate key on insert
// means another sweep already claimed it.
type ReminderSend struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BookingID    uint       `gorm:"not null;uniqueIndex:idx_reminder_sends_booking_type" json:"booking_id"`
	ReminderType string     `gorm:"size:40;not null;uniqueIndex:idx_reminder_sends_booking_type" json:"reminder_type"`
	Status       string     `gorm:"size:20;not null" json:"status"` // PENDING | SENT | FAILED
	Error        string     `gorm:"size:512" json:"error,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`
}

func (ReminderSend) TableName() string {
	return "reminder_sends"
}
