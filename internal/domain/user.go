package domain

import "time"

// User is an account row. Email is stored normalized (lower-case, trimmed)
// and is unique. The password is only ever stored as an Argon2id hash.
type User struct {
	ID           int64
	Email        string
	PasswordHash string

	// Optional profile fields, empty when not provided at registration.
	FirstName    string
	LastName     string
	Organization string
	Phone        string

	CreatedAt time.Time
}
