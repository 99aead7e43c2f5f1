// Package entity defines the lodging listing entity.
package entity

import "time"

// House は宿泊施設（民宿）の掲載情報です。
// Price は1泊あたりの料金（円）、Capacity は宿泊可能な最大人数で、いずれも1以上です。
type House struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;not null;index"`
	ImageName   string    `gorm:"size:255"`
	Description string    `gorm:"type:text;not null"`
	Price       int       `gorm:"not null"`
	Capacity    int       `gorm:"not null"`
	PostalCode  string    `gorm:"size:50;not null"`
	Address     string    `gorm:"size:255;not null"`
	PhoneNumber string    `gorm:"size:50;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
