package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hajorau/saveenergy/internal/domain"
	"github.com/hajorau/saveenergy/internal/store"
	"github.com/hajorau/saveenergy/pkg/cryptox"
	"github.com/hajorau/saveenergy/pkg/tokenx"
)

// UserService handles registration and login.
type UserService struct {
	Store  store.Store
	Tokens *tokenx.Codec
}

// RegisterParams carries the registration payload. Everything besides email
// and password is optional profile data.
type RegisterParams struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Organization string
	Phone        string
}

// Register creates a new account. The email is normalized before the
// uniqueness check so "User@Example.com " and "user@example.com" collide.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (int64, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		Email:        NormalizeEmail(p.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Organization: strings.TrimSpace(p.Organization),
		Phone:        strings.TrimSpace(p.Phone),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Sign(u.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// NormalizeEmail lower-cases and trims an email address. This is the only
// form that ever reaches the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
