package models

import (
	"time"
)

// RewardsLedgerEntry is append-only; the rewards balance is derived by summing
// deltas (no materialized balance table).
type RewardsLedgerEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Delta     int       `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"size:255" json:"reason"`
	BookingID *uint     `json:"booking_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (RewardsLedgerEntry) TableName() string {
	return "rewards_ledger_entries"
}
