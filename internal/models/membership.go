package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership is a per-user plan record. An active unlimited membership (flag
// set, no expiry or expiry in the future) exempts bookings from credit
// consumption.
type Membership struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	PlanName  string         `gorm:"size:64;not null" json:"plan_name"`
	Unlimited bool           `gorm:"not null;default:false" json:"unlimited"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}

// UnlimitedActive reports whether this membership bypasses credits at t.
func (m *Membership) UnlimitedActive(t time.Time) bool {
	if !m.Unlimited {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(t)
}
