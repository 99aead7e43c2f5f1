package entity

import "time"

// Role names are a fixed set seeded by the migration.
const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleGeneral = "ROLE_GENERAL"
)

// Role is the authority granted to a user.
type Role struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleNames lists every role the application knows about.
func RoleNames() []string {
	return []string{RoleAdmin, RoleGeneral}
}
