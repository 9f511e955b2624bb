package models

import (
	"time"

	"gorm.io/gorm"
)

// IntakeSubmission stores one row per (user, form type) with upsert semantics:
// resubmission overwrites the payload and timestamp. Payload is the raw JSON
// the client sent (object or array, not validated beyond being JSON).
type IntakeSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_intake_user_form" json:"user_id"`
	FormType    string    `gorm:"size:40;not null;uniqueIndex:idx_intake_user_form" json:"form_type"`
	Payload     string    `gorm:"type:text" json:"-"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (IntakeSubmission) TableName() string {
	return "intake_submissions"
}

type Waiver struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	Active    bool           `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Waiver) TableName() string {
	return "waivers"
}

// WaiverSignature: one row per signing event, no uniqueness constraint.
// "Has signed" means at least one row exists against the active waiver.
type WaiverSignature struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WaiverID  uint      `gorm:"not null;index" json:"waiver_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SignedAt  time.Time `gorm:"not null" json:"signed_at"`
	CreatedAt time.Time `json:"created_at"`

	Waiver Waiver `gorm:"foreignKey:WaiverID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (WaiverSignature) TableName() string {
	return "waiver_signatures"
}
