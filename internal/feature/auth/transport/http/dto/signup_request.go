// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "lodging_backend/internal/feature/auth/usecase"

// SignupReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
// The password confirmation match is checked by the usecase together with the duplicate email check.
type SignupReq struct {
	Name                 string `json:"name" binding:"required,max=50"`
	Furigana             string `json:"furigana" binding:"required,max=50"`
	PostalCode           string `json:"postalCode" binding:"required,max=50"`
	Address              string `json:"address" binding:"required,max=255"`
	PhoneNumber          string `json:"phoneNumber" binding:"required,max=50"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,min=8"`
}

// ToInput converts the request into the usecase input.
func (r SignupReq) ToInput() usecase.SignupInput {
	return usecase.SignupInput{
		Name:                 r.Name,
		Furigana:             r.Furigana,
		PostalCode:           r.PostalCode,
		Address:              r.Address,
		PhoneNumber:          r.PhoneNumber,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}
