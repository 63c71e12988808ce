package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"tradegate/internal/domain"
	"tradegate/internal/platform/logger"
	"tradegate/internal/store"
)

// orderColumns selects an order row joined with its product so every read
// carries a current product snapshot. Orders whose product was deleted drop
// out of the join and are reported as not found.
const orderColumns = `
	o.id, o.user_id, o.product_id, o.quantity, o.total_price, o.status, o.created_at, o.updated_at,
	p.id, p.user_id, p.name, p.description, p.price, p.image_url, p.created_at, p.updated_at
`

// PostgresOrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresOrderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the
// OrderStore interface. If logger is nil, a default logger will be used.
func NewPostgresOrderStore(db store.DBTX, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

// Create implements store.OrderStore.Create
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("buyer_id", order.UserID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO orders (user_id, product_id, quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		order.UserID,
		order.ProductID,
		order.Quantity,
		order.TotalPrice,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)

	if err != nil {
		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.Int64("buyer_id", order.UserID),
			slog.Int64("product_id", order.ProductID))
		return err
	}

	log.Info("order created successfully",
		slog.Int64("order_id", order.ID),
		slog.Int64("buyer_id", order.UserID),
		slog.Int64("product_id", order.ProductID))
	return nil
}

// GetByID implements store.OrderStore.GetByID
// Returns store.ErrOrderNotFound if the order or its product does not exist.
func (s *PostgresOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		INNER JOIN products p ON p.id = o.product_id
		WHERE o.id = $1
	`

	order, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("order not found", slog.Int64("order_id", id))
			return nil, store.ErrOrderNotFound
		}
		log.Error("failed to get order by ID",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return nil, err
	}

	return order, nil
}

// ListByUser implements store.OrderStore.ListByUser
func (s *PostgresOrderStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		INNER JOIN products p ON p.id = o.product_id
		WHERE o.user_id = $1
		ORDER BY o.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query orders",
			slog.String("error", err.Error()),
			slog.Int64("buyer_id", userID))
		return nil, err
	}
	defer closeRows(rows, log)

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", slog.String("error", err.Error()))
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning order rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed orders",
		slog.Int64("buyer_id", userID),
		slog.Int("count", len(orders)))
	return orders, nil
}

// Update implements store.OrderStore.Update
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) Update(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("order_id", order.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE orders
		SET quantity = $1, total_price = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		order.Quantity,
		order.TotalPrice,
		order.Status,
		order.UpdatedAt,
		order.ID,
	)

	if err != nil {
		log.Error("failed to update order",
			slog.String("error", err.Error()),
			slog.Int64("order_id", order.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("order_id", order.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("order not found for update", slog.Int64("order_id", order.ID))
		return store.ErrOrderNotFound
	}

	log.Info("order updated successfully",
		slog.Int64("order_id", order.ID),
		slog.String("status", string(order.Status)))
	return nil
}

// Delete implements store.OrderStore.Delete
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete order",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("order_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("order not found for delete", slog.Int64("order_id", id))
		return store.ErrOrderNotFound
	}

	log.Info("order deleted successfully", slog.Int64("order_id", id))
	return nil
}

// WithTx implements store.OrderStore.WithTx
func (s *PostgresOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &PostgresOrderStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var product domain.Product
	var status string

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
		&product.ID,
		&product.UserID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	order.Product = &product
	return &order, nil
}
