package store

import (
	"context"
	"errors"

	"github.com/hajorau/saveenergy/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever outgrow a single file) implement this. Sub-repositories
// keep the two tables' concerns separate and testable.
type Store interface {
	Users() Users
	Calculations() Calculations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Preferred over
	// Tx for multi-step writes such as the admin reset.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new account and returns the assigned id.
	// Returns ErrAlreadyExists when the (normalized) email is taken.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// GetUserByEmail looks up an account by its normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// CountUsers returns the total number of accounts.
	CountUsers(ctx context.Context) (int64, error)

	// DeleteAllUsers removes every account. Admin reset only.
	DeleteAllUsers(ctx context.Context) error
}

type Calculations interface {
	// CreateCalculation stores the verbatim inputs and computed outputs as
	// opaque JSON documents and returns the assigned sequential id.
	CreateCalculation(ctx context.Context, userID int64, inputsJSON, outputsJSON []byte) (int64, error)

	// ListCalculationsByUser returns the user's records, newest first.
	ListCalculationsByUser(ctx context.Context, userID int64) ([]domain.Calculation, error)

	// GetCalculationForUser fetches a single record scoped to its owner.
	// Returns ErrNotFound for absent records and records of other users alike.
	GetCalculationForUser(ctx context.Context, id, userID int64) (domain.Calculation, error)

	// DeleteAllCalculations removes every record. Admin reset only.
	DeleteAllCalculations(ctx context.Context) error
}
