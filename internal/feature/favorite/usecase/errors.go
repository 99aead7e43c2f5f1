// Package usecase implements the business logic for the favorite feature.
package usecase

import (
	"errors"

	houseusecase "lodging_backend/internal/feature/house/usecase"
)

var (
	// ErrFavoriteNotFound is returned when a favorite does not exist or does not belong to the house in the path.
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrAlreadyFavorite is returned when the user has already added the house to favorites.
	ErrAlreadyFavorite = errors.New("house already in favorites")

	// ErrForbidden is returned when a user tries to remove another user's favorite.
	ErrForbidden = errors.New("favorite belongs to another user")

	// ErrHouseNotFound is the house feature's not-found error, re-exported for handlers of this feature.
	ErrHouseNotFound = houseusecase.ErrHouseNotFound
)
