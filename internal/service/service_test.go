package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"tradegate/internal/config"
	"tradegate/internal/domain"
	"tradegate/internal/fault"
	"tradegate/internal/platform/sqlite"
	"tradegate/internal/service"
	"tradegate/internal/service/auth"
	"tradegate/internal/store"
	"tradegate/internal/testdb"
)

const testSigningKey = "test-signing-key-0123456789abcdef"

// harness bundles the services wired against a fresh in-memory database,
// the same way cmd/server wires them in production.
type harness struct {
	db        *sql.DB
	users     *service.UserService
	products  *service.ProductService
	orders    *service.OrderService
	tokens    auth.TokenService
	hasher    auth.PasswordHasher
	userStore store.UserStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testdb.NewSQLite(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	userStore := sqlite.NewSQLiteUserStore(db, log)
	productStore := sqlite.NewSQLiteProductStore(db, log)
	orderStore := sqlite.NewSQLiteOrderStore(db, log)

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:            testSigningKey,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	// Low iteration count so hashing does not dominate the test run.
	hasher := auth.NewPasswordHasher("test-pepper", 1000)

	return &harness{
		db:        db,
		users:     service.NewUserService(db, userStore, tokens, hasher, log),
		products:  service.NewProductService(db, productStore, log),
		orders:    service.NewOrderService(db, orderStore, productStore, log),
		tokens:    tokens,
		hasher:    hasher,
		userStore: userStore,
	}
}

// signup creates an account through the service and returns it together
// with claims for acting as that user.
func (h *harness) signup(t *testing.T, email, password string) (*domain.User, *auth.Claims) {
	t.Helper()

	user, err := h.users.CreateUser(context.Background(), &service.CreateUserInput{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	return user, &auth.Claims{UserID: user.ID, Email: user.Email}
}

// promoteToAdmin flips the stored role; there is no self-service path to
// admin through the operations themselves.
func (h *harness) promoteToAdmin(t *testing.T, user *domain.User) {
	t.Helper()

	user.Role = domain.RoleAdmin
	require.NoError(t, h.userStore.Update(context.Background(), user))
}

// listProduct creates a listing owned by the given claims.
func (h *harness) listProduct(t *testing.T, claims *auth.Claims, name string, price float64) *domain.Product {
	t.Helper()

	product, err := h.products.CreateProduct(context.Background(), claims, &service.CreateProductInput{
		Name:  name,
		Price: price,
	})
	require.NoError(t, err)

	return product
}

// placeOrder creates an order for the given claims.
func (h *harness) placeOrder(t *testing.T, claims *auth.Claims, productID int64, quantity int) *domain.Order {
	t.Helper()

	order, err := h.orders.CreateOrder(context.Background(), claims, &service.CreateOrderInput{
		ProductID: productID,
		Quantity:  quantity,
	})
	require.NoError(t, err)

	return order
}

func ptr[T any](v T) *T {
	return &v
}

// requireFault asserts that err surfaces to callers as a fault with the
// given code and status, translating sentinels the way the dispatcher does.
func requireFault(t *testing.T, err error, code, status int) *fault.Fault {
	t.Helper()

	require.Error(t, err)
	flt := fault.FromError(err)
	require.Equal(t, code, flt.Code)
	require.Equal(t, status, flt.Status)
	return flt
}
