// Package usecase implements reservation checkout and the payment completion webhook.
package usecase

import (
	"errors"

	houseusecase "lodging_backend/internal/feature/house/usecase"
)

// Field error messages shown to the user.
const (
	MsgStayPeriod   = "チェックアウト日はチェックイン日より後の日付を選択してください。"
	MsgOverCapacity = "宿泊人数が定員を超えています。"
)

var (
	// ErrReservationAlreadyExists is returned when a reservation for the same payment has already been stored.
	ErrReservationAlreadyExists = errors.New("reservation already exists for payment")

	// ErrCheckoutUnavailable is returned when the payment provider could not create a checkout session.
	ErrCheckoutUnavailable = errors.New("checkout session could not be created")

	// ErrHouseNotFound is the house feature's not-found error, re-exported for handlers of this feature.
	ErrHouseNotFound = houseusecase.ErrHouseNotFound
)
