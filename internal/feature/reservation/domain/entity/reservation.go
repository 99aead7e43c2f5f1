// Package entity defines the reservation entity.
package entity

import (
	"time"

	authentity "lodging_backend/internal/feature/auth/domain/entity"
	houseentity "lodging_backend/internal/feature/house/domain/entity"
)

// Reservation は決済完了通知を受けて作成される予約です。
// ユーザー入力から直接作成されることはありません。
type Reservation struct {
	ID             uint               `gorm:"primaryKey"`
	HouseID        uint               `gorm:"not null;index"`
	House          *houseentity.House `gorm:"foreignKey:HouseID"`
	UserID         uint               `gorm:"not null;index"`
	User           *authentity.User   `gorm:"foreignKey:UserID"`
	CheckinDate    time.Time          `gorm:"type:date;not null"`
	CheckoutDate   time.Time          `gorm:"type:date;not null"`
	NumberOfPeople int                `gorm:"not null"`
	Amount         int                `gorm:"not null"`

	// PaymentIntentID は決済プロバイダー側の支払いIDです。同じ決済から予約が2件作られないよう一意です。
	PaymentIntentID string `gorm:"size:255;not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
