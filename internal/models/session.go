package models

import (
	"time"

	"gorm.io/gorm"
)

// ClassType is the template a Session is scheduled from.
type ClassType struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:128;not null" json:"name"`
	Description     string         `gorm:"size:1024" json:"description"`
	DurationMinutes int            `gorm:"not null;default:60" json:"duration_minutes"`
	DefaultCapacity int            `gorm:"not null;default:10" json:"default_capacity"`
	Active          bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ClassType) TableName() string {
	return "class_types"
}

// Session is a concrete scheduled occurrence of a ClassType. Capacity may
// override the class type's default.
type Session struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClassTypeID uint           `gorm:"not null;index" json:"class_type_id"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	Capacity    int            `gorm:"not null" json:"capacity"`
	Visible     bool           `gorm:"not null;default:true" json:"visible"`
	Notes       string         `gorm:"size:1024" json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	ClassType ClassType `gorm:"foreignKey:ClassTypeID" json:"class_type"`
}

func (Session) TableName() string {
	return "sessions"
}
