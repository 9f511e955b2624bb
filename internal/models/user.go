package models

import (
	"time"

	"studiohq/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName     string         `gorm:"size:128" json:"full_name"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	HashAlgo     string         `gorm:"size:20;not null;default:'bcrypt'" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // CLIENT | ADMIN
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"`      // nil for email signups (avoids duplicate '' on unique index)
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool  { return u.Role == domain.RoleAdmin }
func (u *User) IsClient() bool { return u.Role == domain.RoleClient }
