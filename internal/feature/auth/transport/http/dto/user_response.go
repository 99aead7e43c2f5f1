package dto

import (
	"time"

	"lodging_backend/internal/feature/auth/domain/entity"
)

// UserRes はユーザーのレスポンスです。パスワードハッシュは含めません。
type UserRes struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Furigana    string    `json:"furigana"`
	PostalCode  string    `json:"postalCode"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewUserRes はエンティティからレスポンスを生成します。
func NewUserRes(u entity.User) UserRes {
	return UserRes{
		ID:          u.ID,
		Name:        u.Name,
		Furigana:    u.Furigana,
		PostalCode:  u.PostalCode,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.RoleName(),
		Enabled:     u.Enabled,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// TokenRes は/loginのレスポンスです。
type TokenRes struct {
	Token string `json:"token"`
}
