package store

import (
	"context"
	"database/sql"

	"tradegate/internal/domain"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user and assigns its ID.
	// Returns ErrEmailExists if the email is already taken and
	// ErrInvalidEntity if the user fails domain validation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if no account uses the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves every user, ordered by ID. An empty store yields an
	// empty slice, never an error.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Update writes the full user row.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// if the email would collide with another account.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user permanently.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore bound to the given transaction so several
	// operations can share one transaction managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
