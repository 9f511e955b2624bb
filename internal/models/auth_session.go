package models

import (
	"time"
)

// AuthSession is the server-side record behind each issued access token.
// Tokens carry the session's TokenID (jti); a token is only accepted while its
// session row exists, is not revoked, and has not expired.
type AuthSession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	TokenID   string     `gorm:"uniqueIndex;size:36;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}

func (s *AuthSession) Valid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
