package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers wrong email, wrong password and
	// disabled accounts. Login fails closed without revealing which;
	// the distinction is logged only.
	ErrInvalidCredentials = errors.New("email or password is incorrect")

	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")

	ErrRefreshTokenInvalid = errors.New("refresh token is invalid or expired")

	ErrTokenRevoked  = errors.New("token has been revoked")
	ErrTokenInactive = errors.New("token is no longer active")
	ErrUserDisabled  = errors.New("user does not exist or is disabled")

	ErrPasswordConfirmMismatch = errors.New("new password does not match confirm password")
	ErrPasswordSameAsCurrent   = errors.New("new password cannot be the same as the current password")
	ErrWrongPassword           = errors.New("current password is incorrect")
)
