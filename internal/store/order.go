package store

import (
	"context"
	"database/sql"

	"tradegate/internal/domain"
)

// OrderStore defines the interface for order persistence. Every read joins
// the product row, so returned orders carry a current product snapshot and
// orders whose product was deleted are reported as not found.
type OrderStore interface {
	// Create saves a new order and assigns its ID. The product snapshot is
	// not stored; re-fetch with GetByID to populate it.
	// Returns ErrInvalidEntity if the order fails domain validation.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its product snapshot.
	// Returns ErrOrderNotFound if the order (or its product) does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByUser retrieves the given buyer's orders with product snapshots,
	// ordered by ID. No orders yields an empty slice, never an error.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)

	// Update writes the mutable order columns (quantity, total, status).
	// Returns ErrOrderNotFound if the order does not exist.
	Update(ctx context.Context, order *domain.Order) error

	// Delete removes an order permanently.
	// Returns ErrOrderNotFound if the order does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns an OrderStore bound to the given transaction.
	WithTx(tx *sql.Tx) OrderStore
}
