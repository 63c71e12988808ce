package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradegate/internal/domain"
	"tradegate/internal/platform/sqlite"
	"tradegate/internal/store"
)

func TestProductStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("assigns an id and persists the row", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		products := sqlite.NewSQLiteProductStore(db, nil)

		product := mustCreateProduct(t, products, 1, "Mechanical Keyboard", 129.99)
		require.NotZero(t, product.ID)

		got, err := products.GetByID(context.Background(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mechanical Keyboard", got.Name)
		assert.Equal(t, int64(1), got.UserID)
		assert.Equal(t, 129.99, got.Price)
	})

	t.Run("rejects an invalid product", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		products := sqlite.NewSQLiteProductStore(db, nil)

		err := products.Create(context.Background(), &domain.Product{UserID: 1, Name: "Free", Price: 0})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestProductStore_GetByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Mechanical Keyboard", 129.99)

	t.Run("returns the stored product", func(t *testing.T) {
		got, err := products.GetByID(context.Background(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
	})

	t.Run("reports missing products", func(t *testing.T) {
		_, err := products.GetByID(context.Background(), 9999)
		assert.ErrorIs(t, err, store.ErrProductNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestProductStore_GetAll(t *testing.T) {
	t.Parallel()

	t.Run("returns an empty slice for an empty store", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		products := sqlite.NewSQLiteProductStore(db, nil)

		all, err := products.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("returns products ordered by id", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		products := sqlite.NewSQLiteProductStore(db, nil)

		first := mustCreateProduct(t, products, 1, "Keyboard", 100)
		second := mustCreateProduct(t, products, 2, "Mouse", 50)

		all, err := products.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})
}

func TestProductStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("persists changed fields", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		products := sqlite.NewSQLiteProductStore(db, nil)
		product := mustCreateProduct(t, products, 1, "Keyboard", 100)

		product.Name = "Keyboard v2"
		product.Description = "Now with more keys"
		product.Price = 149.5
		product.UpdatedAt = time.Now().UTC()
		require.NoError(t, products.Update(context.Background(), product))

		got, err := products.GetByID(context.Background(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Keyboard v2", got.Name)
		assert.Equal(t, "Now with more keys", got.Description)
		assert.Equal(t, 149.5, got.Price)
	})

	t.Run("reports missing products", func(t *testing.T) {
		t.Parallel()
		db := newTestDB(t)
		products := sqlite.NewSQLiteProductStore(db, nil)

		ghost, err := domain.NewProduct(1, "Ghost", "", 10, "")
		require.NoError(t, err)
		ghost.ID = 9999
		assert.ErrorIs(t, products.Update(context.Background(), ghost), store.ErrProductNotFound)
	})
}

func TestProductStore_Delete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	products := sqlite.NewSQLiteProductStore(db, nil)
	product := mustCreateProduct(t, products, 1, "Keyboard", 100)

	t.Run("removes the row", func(t *testing.T) {
		require.NoError(t, products.Delete(context.Background(), product.ID))
		_, err := products.GetByID(context.Background(), product.ID)
		assert.ErrorIs(t, err, store.ErrProductNotFound)
	})

	t.Run("reports missing products", func(t *testing.T) {
		assert.ErrorIs(t, products.Delete(context.Background(), product.ID), store.ErrProductNotFound)
	})
}
