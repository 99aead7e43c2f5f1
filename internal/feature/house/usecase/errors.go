// Package usecase implements the business logic for the house feature.
package usecase

import "errors"

var (
	// ErrHouseNotFound is returned when a house with the given ID does not exist.
	ErrHouseNotFound = errors.New("house not found")

	// ErrHouseInUse is returned when a house cannot be deleted because reservations still reference it.
	ErrHouseInUse = errors.New("house is referenced by reservations")
)
