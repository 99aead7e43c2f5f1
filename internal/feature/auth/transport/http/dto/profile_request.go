package dto

import "lodging_backend/internal/feature/auth/usecase"

// ProfileReq は会員情報編集（PUT /user）のリクエストボディです。
type ProfileReq struct {
	Name        string `json:"name" binding:"required,max=50"`
	Furigana    string `json:"furigana" binding:"required,max=50"`
	PostalCode  string `json:"postalCode" binding:"required,max=50"`
	Address     string `json:"address" binding:"required,max=255"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=50"`
	Email       string `json:"email" binding:"required,email,max=255"`
}

func (r ProfileReq) ToInput() usecase.ProfileInput {
	return usecase.ProfileInput{
		Name:        r.Name,
		Furigana:    r.Furigana,
		PostalCode:  r.PostalCode,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
	}
}
