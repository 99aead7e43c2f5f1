// Package entity defines the review entity.
package entity

import (
	"time"

	authentity "lodging_backend/internal/feature/auth/domain/entity"
	houseentity "lodging_backend/internal/feature/house/domain/entity"
)

// Score bounds and the content length limit of a review.
const (
	MinScore         = 1
	MaxScore         = 5
	MaxContentLength = 300
)

// Review is a user's rating of a house. A user can review a house at most once.
type Review struct {
	ID        uint               `gorm:"primaryKey"`
	HouseID   uint               `gorm:"not null;uniqueIndex:idx_reviews_house_user"`
	House     *houseentity.House `gorm:"foreignKey:HouseID;constraint:OnDelete:CASCADE"`
	UserID    uint               `gorm:"not null;uniqueIndex:idx_reviews_house_user"`
	User      *authentity.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Score     int                `gorm:"not null"`
	Content   string             `gorm:"size:300;not null"`
	CreatedAt time.Time          `gorm:"index"`
	UpdatedAt time.Time
}
