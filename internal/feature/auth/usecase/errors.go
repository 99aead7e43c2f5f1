// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

// Field error messages shown to the user.
const (
	MsgEmailAlreadyRegistered = "すでに登録済みのメールアドレスです。"
	MsgPasswordMismatch       = "パスワードが一致しません。"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to store a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrRoleNotFound is returned when a fixed role has not been seeded.
	ErrRoleNotFound = errors.New("role not found")

	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotVerified is returned when the password is correct but the email has not been verified yet.
	ErrUserNotVerified = errors.New("user email is not verified")

	// ErrTokenNotFound is returned when a verification token does not match any issued token.
	ErrTokenNotFound = errors.New("verification token not found")

	// ErrTokenExpired is returned when a verification token is past its expiry.
	ErrTokenExpired = errors.New("verification token expired")

	// ErrVerificationMail is returned when the verification mail could not be sent.
	// The signup is rolled back so that the same email can be used again.
	ErrVerificationMail = errors.New("failed to send verification mail")
)
