// Package usecase implements the business logic for the review feature.
package usecase

import (
	"errors"

	houseusecase "lodging_backend/internal/feature/house/usecase"
)

// Field error messages shown to the user.
const (
	MsgScoreRange     = "評価は1～5のいずれかを選択してください。"
	MsgContentTooLong = "コメントは300文字以内で入力してください。"
	MsgContentBlank   = "コメントを入力してください。"
)

var (
	// ErrReviewNotFound is returned when a review does not exist or does not belong to the house in the path.
	ErrReviewNotFound = errors.New("review not found")

	// ErrAlreadyReviewed is returned when the user has already reviewed the house.
	ErrAlreadyReviewed = errors.New("house already reviewed by user")

	// ErrForbidden is returned when a user tries to change a review written by someone else.
	ErrForbidden = errors.New("review belongs to another user")

	// ErrHouseNotFound is the house feature's not-found error, re-exported for handlers of this feature.
	ErrHouseNotFound = houseusecase.ErrHouseNotFound
)
