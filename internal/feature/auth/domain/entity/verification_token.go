package entity

import "time"

// VerificationToken はサインアップ時に発行されるメール認証用トークンです。
// 1ユーザーにつき1件で、認証に成功した時点で削除されます。
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token     string    `gorm:"uniqueIndex;size:255;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired は指定時刻の時点でトークンが期限切れかどうかを返します。
func (t *VerificationToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
