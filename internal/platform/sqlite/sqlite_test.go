package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"tradegate/internal/domain"
	"tradegate/internal/store"
	"tradegate/internal/testdb"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return testdb.NewSQLite(t)
}

func mustCreateUser(t *testing.T, users store.UserStore, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "digest-"+email, "")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func mustCreateProduct(t *testing.T, products store.ProductStore, ownerID int64, name string, price float64) *domain.Product {
	t.Helper()

	product, err := domain.NewProduct(ownerID, name, "", price, "")
	require.NoError(t, err)
	require.NoError(t, products.Create(context.Background(), product))
	return product
}

func mustCreateOrder(t *testing.T, orders store.OrderStore, buyerID, productID int64, quantity int, unitPrice float64) *domain.Order {
	t.Helper()

	order, err := domain.NewOrder(buyerID, productID, quantity, unitPrice)
	require.NoError(t, err)
	require.NoError(t, orders.Create(context.Background(), order))
	return order
}
