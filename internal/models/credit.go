package models

import (
	"time"

	"gorm.io/gorm"
)

type CreditType struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Active    bool           `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CreditType) TableName() string {
	return "credit_types"
}

// CreditLedgerEntry is immutable once written; the append-only source of truth
// for balance history. Positive delta = grant/refund, negative = consumption.
type CreditLedgerEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	CreditTypeID uint      `gorm:"not null;index" json:"credit_type_id"`
	Delta        int       `gorm:"not null" json:"delta"`
	Reason       string    `gorm:"size:255" json:"reason"`
	ActorID      *uint     `json:"actor_id,omitempty"` // admin who made an adjustment, nil for system entries
	CreatedAt    time.Time `json:"created_at"`

	User       User       `gorm:"foreignKey:UserID" json:"-"`
	CreditType CreditType `gorm:"foreignKey:CreditTypeID" json:"-"`
}

func (CreditLedgerEntry) TableName() string {
	return "credit_ledger_entries"
}

// CreditBalance is a read-optimized projection of the ledger, updated in the
// same transaction as each ledger insert. Never negative.
type CreditBalance struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_credit_balances_user_type" json:"user_id"`
	CreditTypeID uint      `gorm:"not null;uniqueIndex:idx_credit_balances_user_type" json:"credit_type_id"`
	Balance      int       `gorm:"not null;default:0" json:"balance"`
	UpdatedAt    time.Time `json:"updated_at"`

	CreditType CreditType `gorm:"foreignKey:CreditTypeID" json:"credit_type"`
}

func (CreditBalance) TableName() string {
	return "credit_balances"
}
