package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a shop account.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized

	// Both fields are set together when a password reset is requested and
	// cleared together once the token is used. The token is valid for one hour.
	ResetToken          *string    `json:"-" gorm:"type:varchar(64);index"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	gorm.Model `json:"-"`
}

// HasValidResetToken reports whether the given token matches the user's
// outstanding reset token and is still inside its validity window.
func (u *User) HasValidResetToken(token string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiresAt == nil {
		return false
	}
	return *u.ResetToken == token && now.Before(*u.ResetTokenExpiresAt)
}
