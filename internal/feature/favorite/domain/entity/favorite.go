// Package entity defines the favorite entity.
package entity

import (
	"time"

	authentity "lodging_backend/internal/feature/auth/domain/entity"
	houseentity "lodging_backend/internal/feature/house/domain/entity"
)

// Favorite links a user to a house they bookmarked.
type Favorite struct {
	ID        uint               `gorm:"primaryKey"`
	HouseID   uint               `gorm:"not null;uniqueIndex:idx_favorites_house_user"`
	House     *houseentity.House `gorm:"foreignKey:HouseID;constraint:OnDelete:CASCADE"`
	UserID    uint               `gorm:"not null;uniqueIndex:idx_favorites_house_user"`
	User      *authentity.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time          `gorm:"index"`
	UpdatedAt time.Time
}
