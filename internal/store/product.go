package store

import (
	"context"
	"database/sql"

	"tradegate/internal/domain"
)

// ProductStore defines the interface for product listing persistence.
type ProductStore interface {
	// Create saves a new product and assigns its ID.
	// Returns ErrInvalidEntity if the product fails domain validation.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetAll retrieves every product, ordered by ID. An empty store yields
	// an empty slice, never an error.
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// Update writes the full product row.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product permanently. Orders referencing it keep
	// their rows but disappear from reads, which join the product.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a ProductStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProductStore
}
