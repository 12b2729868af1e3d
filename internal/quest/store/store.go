package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories so that a Tx-scoped Store can hand out the same
// repositories bound to the transaction.
type Store interface {
	Users() Users
	Registrations() Registrations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. fn returning an error rolls
	// the transaction back, nil commits it. Repositories used inside fn must
	// come from the tx argument, not the outer Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByCardHash(ctx context.Context, cardHash string) (domain.User, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	CardHashExists(ctx context.Context, cardHash string) (bool, error)

	// CreateUser returns ErrAlreadyExists when the id, card hash or username
	// is already taken.
	CreateUser(ctx context.Context, u domain.User) error
}

type Registrations interface {
	// CreateRegistration returns ErrAlreadyExists when the card hash or its
	// prefix is already held by an outstanding registration.
	CreateRegistration(ctx context.Context, r domain.Registration) error

	GetRegistrationByPrefix(ctx context.Context, prefix string) (domain.Registration, error)
	GetRegistrationByCardHash(ctx context.Context, cardHash string) (domain.Registration, error)

	// TakeRegistrationByPrefix deletes and returns the registration in a
	// single statement, so concurrent callers cannot both receive it.
	TakeRegistrationByPrefix(ctx context.Context, prefix string) (domain.Registration, error)

	// DeleteRegistrationsBefore is housekeeping for abandoned tokens.
	DeleteRegistrationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
