package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradegate/internal/domain"
	"tradegate/internal/platform/sqlite"
	"tradegate/internal/store"
)

func TestOrderStore_Create(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	orders := sqlite.NewSQLiteOrderStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Keyboard", 100)

	t.Run("assigns an id and persists the row", func(t *testing.T) {
		order := mustCreateOrder(t, orders, 2, product.ID, 3, product.Price)
		require.NotZero(t, order.ID)
		assert.Equal(t, 300.0, order.TotalPrice)

		got, err := orders.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, domain.OrderStatusPending, got.Status)
	})

	t.Run("rejects an invalid order", func(t *testing.T) {
		err := orders.Create(context.Background(), &domain.Order{
			UserID:    2,
			ProductID: product.ID,
			Quantity:  0,
			Status:    domain.OrderStatusPending,
		})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestOrderStore_GetByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	orders := sqlite.NewSQLiteOrderStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Keyboard", 100)
	order := mustCreateOrder(t, orders, 2, product.ID, 3, product.Price)

	t.Run("joins the product snapshot", func(t *testing.T) {
		got, err := orders.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Product)
		assert.Equal(t, product.ID, got.Product.ID)
		assert.Equal(t, "Keyboard", got.Product.Name)
		assert.Equal(t, 100.0, got.Product.Price)
	})

	t.Run("reports missing orders", func(t *testing.T) {
		_, err := orders.GetByID(context.Background(), 9999)
		assert.ErrorIs(t, err, store.ErrOrderNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("hides orders whose product was deleted", func(t *testing.T) {
		require.NoError(t, products.Delete(context.Background(), product.ID))
		_, err := orders.GetByID(context.Background(), order.ID)
		assert.ErrorIs(t, err, store.ErrOrderNotFound)
	})
}

func TestOrderStore_ListByUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	orders := sqlite.NewSQLiteOrderStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Keyboard", 100)

	mine := mustCreateOrder(t, orders, 2, product.ID, 1, product.Price)
	mustCreateOrder(t, orders, 3, product.ID, 2, product.Price)

	t.Run("returns only the buyer's orders", func(t *testing.T) {
		got, err := orders.ListByUser(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, mine.ID, got[0].ID)
		require.NotNil(t, got[0].Product)
		assert.Equal(t, product.ID, got[0].Product.ID)
	})

	t.Run("returns an empty slice for a buyer with no orders", func(t *testing.T) {
		got, err := orders.ListByUser(context.Background(), 42)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestOrderStore_Update(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	orders := sqlite.NewSQLiteOrderStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Keyboard", 100)

	t.Run("persists quantity, total and status", func(t *testing.T) {
		order := mustCreateOrder(t, orders, 2, product.ID, 1, product.Price)

		order.Quantity = 5
		order.Reprice(product.Price)
		order.Status = domain.OrderStatusCompleted
		require.NoError(t, orders.Update(context.Background(), order))

		got, err := orders.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity)
		assert.Equal(t, 500.0, got.TotalPrice)
		assert.Equal(t, domain.OrderStatusCompleted, got.Status)
	})

	t.Run("reports missing orders", func(t *testing.T) {
		ghost, err := domain.NewOrder(2, product.ID, 1, product.Price)
		require.NoError(t, err)
		ghost.ID = 9999
		assert.ErrorIs(t, orders.Update(context.Background(), ghost), store.ErrOrderNotFound)
	})
}

func TestOrderStore_Delete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	orders := sqlite.NewSQLiteOrderStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Keyboard", 100)
	order := mustCreateOrder(t, orders, 2, product.ID, 1, product.Price)

	t.Run("removes the row", func(t *testing.T) {
		require.NoError(t, orders.Delete(context.Background(), order.ID))
		_, err := orders.GetByID(context.Background(), order.ID)
		assert.ErrorIs(t, err, store.ErrOrderNotFound)
	})

	t.Run("reports missing orders", func(t *testing.T) {
		assert.ErrorIs(t, orders.Delete(context.Background(), order.ID), store.ErrOrderNotFound)
	})
}

