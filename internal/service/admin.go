package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/hajorau/saveenergy/internal/store"
)

// AdminService performs the destructive reset, gated by a shared secret.
type AdminService struct {
	Store  store.Store
	Secret string
}

// Reset wipes all calculations and users in a single transaction. The
// secret comparison is constant time; an unset secret disables the
// operation entirely.
func (s *AdminService) Reset(ctx context.Context, secret string) error {
	if s.Secret == "" {
		return ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.Secret)) != 1 {
		return ErrForbidden
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Calculations().DeleteAllCalculations(ctx); err != nil {
			return err
		}
		return tx.Users().DeleteAllUsers(ctx)
	})
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
