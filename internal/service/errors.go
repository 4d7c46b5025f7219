package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrEmailTaken reports a duplicate registration.
	ErrEmailTaken = errors.New("service: email already registered")

	// ErrForbidden reports an admin secret mismatch.
	ErrForbidden = errors.New("service: forbidden")
)
