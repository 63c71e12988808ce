package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific wrappers below carry the entity kind.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for the specific rule.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// ErrOrderNotFound indicates that the requested order does not exist.
	// It also covers orders whose product row has been deleted, since order
	// reads always join the product.
	ErrOrderNotFound = fmt.Errorf("%w: order", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already
	// exists, either caught by the pre-insert check or by the unique index.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)
