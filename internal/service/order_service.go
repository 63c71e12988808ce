package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tradegate/internal/domain"
	"tradegate/internal/fault"
	"tradegate/internal/platform/logger"
	"tradegate/internal/service/auth"
	"tradegate/internal/store"
)

// CreateOrderInput carries the CreateOrder parameters. The buyer is the
// authenticated caller and the total is derived from the product's current
// price, never accepted as input.
type CreateOrderInput struct {
	ProductID int64 `json:"product_id" xml:"product_id" validate:"required"`
	Quantity  int   `json:"quantity"   xml:"quantity"   validate:"required,min=1"`
}

// GetOrderInput identifies the order to fetch.
type GetOrderInput struct {
	ID int64 `json:"id" xml:"id" validate:"required"`
}

// UpdateOrderInput carries the UpdateOrder parameters. A quantity below 1
// and a status outside the enumerated set are dropped silently, not
// rejected; nil fields are left unchanged.
type UpdateOrderInput struct {
	ID       int64   `json:"id"       xml:"id" validate:"required"`
	Quantity *int    `json:"quantity" xml:"quantity"`
	Status   *string `json:"status"   xml:"status"`
}

// DeleteOrderInput identifies the order to delete.
type DeleteOrderInput struct {
	ID int64 `json:"id" xml:"id" validate:"required"`
}

// OrderService implements the order operations. Orders are visible only to
// the buyer who placed them: list reads are filtered to the caller and a
// foreign order is reported as missing, never as forbidden.
type OrderService struct {
	db       *sql.DB
	orders   store.OrderStore
	products store.ProductStore
	logger   *slog.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(db *sql.DB, orders store.OrderStore, products store.ProductStore, logger *slog.Logger) *OrderService {
	if db == nil {
		panic("db cannot be nil")
	}
	if orders == nil {
		panic("orders cannot be nil")
	}
	if products == nil {
		panic("products cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderService{
		db:       db,
		orders:   orders,
		products: products,
		logger:   logger.With(slog.String("component", "order_service")),
	}
}

// CreateOrder places a pending order for the caller. The referenced product
// must exist; the total is computed from its price inside the same
// transaction as the insert, so a concurrent price change cannot split the
// two.
func (s *OrderService) CreateOrder(ctx context.Context, claims *auth.Claims, in *CreateOrderInput) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var order *domain.Order
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txOrders := s.orders.WithTx(tx)
		txProducts := s.products.WithTx(tx)

		product, err := txProducts.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}

		order, err = domain.NewOrder(claims.UserID, in.ProductID, in.Quantity, product.Price)
		if err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		if err := txOrders.Create(ctx, order); err != nil {
			return err
		}

		// Re-read through the join so the result carries the product
		// snapshot like every other order read.
		order, err = txOrders.GetByID(ctx, order.ID)
		return err
	})
	if err != nil {
		logMutationFailure(log, "create order", err,
			slog.Int64("product_id", in.ProductID),
			slog.Int64("caller_id", claims.UserID))
		return nil, err
	}

	log.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("product_id", order.ProductID),
		slog.Int64("caller_id", claims.UserID))

	return order, nil
}

// ListOrders returns the caller's orders, ordered by ID.
func (s *OrderService) ListOrders(ctx context.Context, claims *auth.Claims) ([]*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	orders, err := s.orders.ListByUser(ctx, claims.UserID)
	if err != nil {
		log.Error("failed to list orders",
			slog.String("error", err.Error()),
			slog.Int64("caller_id", claims.UserID))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// GetOrder retrieves one of the caller's orders. Someone else's order is
// reported as not found so order IDs leak nothing across accounts.
func (s *OrderService) GetOrder(ctx context.Context, claims *auth.Claims, in *GetOrderInput) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	order, err := s.orders.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			log.Debug("order not found",
				slog.Int64("order_id", in.ID),
				slog.Int64("caller_id", claims.UserID))
		} else {
			log.Error("failed to retrieve order",
				slog.String("error", err.Error()),
				slog.Int64("order_id", in.ID))
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !order.OwnedBy(claims.UserID) {
		log.Debug("order read across accounts",
			slog.Int64("order_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return nil, store.ErrOrderNotFound
	}

	return order, nil
}

// UpdateOrder applies partial changes to one of the caller's orders. A
// quantity change recomputes the total from the product's current price,
// read through the join inside the transaction. Invalid quantities and
// statuses are dropped without a fault.
func (s *OrderService) UpdateOrder(ctx context.Context, claims *auth.Claims, in *UpdateOrderInput) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var order *domain.Order
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txOrders := s.orders.WithTx(tx)

		var err error
		order, err = txOrders.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if !order.OwnedBy(claims.UserID) {
			return fault.Unauthorized()
		}

		changed := false
		if in.Quantity != nil && *in.Quantity >= 1 {
			order.Quantity = *in.Quantity
			order.Reprice(order.Product.Price)
			changed = true
		}
		if in.Status != nil && domain.OrderStatus(*in.Status).Valid() {
			order.Status = domain.OrderStatus(*in.Status)
			changed = true
		}
		if !changed {
			return nil
		}

		order.UpdatedAt = time.Now().UTC()
		return txOrders.Update(ctx, order)
	})
	if err != nil {
		logMutationFailure(log, "update order", err,
			slog.Int64("order_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return nil, err
	}

	log.Info("order updated",
		slog.Int64("order_id", order.ID),
		slog.Int64("caller_id", claims.UserID))

	return order, nil
}

// DeleteOrder removes one of the caller's orders.
func (s *OrderService) DeleteOrder(ctx context.Context, claims *auth.Claims, in *DeleteOrderInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txOrders := s.orders.WithTx(tx)

		order, err := txOrders.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if !order.OwnedBy(claims.UserID) {
			return fault.Unauthorized()
		}

		return txOrders.Delete(ctx, in.ID)
	})
	if err != nil {
		logMutationFailure(log, "delete order", err,
			slog.Int64("order_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return err
	}

	log.Info("order deleted",
		slog.Int64("order_id", in.ID),
		slog.Int64("caller_id", claims.UserID))

	return nil
}
