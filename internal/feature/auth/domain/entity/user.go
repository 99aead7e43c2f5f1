// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered member of the lodging site.
// A user created through signup stays disabled until the emailed verification token is redeemed.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"size:50;not null"`
	Furigana    string `gorm:"size:50;not null"`
	PostalCode  string `gorm:"size:50;not null"`
	Address     string `gorm:"size:255;not null"`
	PhoneNumber string `gorm:"size:50;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users, enabled or pending.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	Password string `gorm:"size:255;not null"`

	RoleID uint  `gorm:"not null;index"`
	Role   *Role `gorm:"foreignKey:RoleID"`

	// Enabled becomes true once the verification token has been redeemed.
	Enabled bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleName returns the name of the preloaded role, or an empty string when the role is not loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
