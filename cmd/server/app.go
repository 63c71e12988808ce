package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"tradegate/internal/api"
	"tradegate/internal/config"
	"tradegate/internal/platform/postgres"
	"tradegate/internal/platform/sqlite"
	"tradegate/internal/rpc"
	"tradegate/internal/service"
	"tradegate/internal/service/auth"
	"tradegate/internal/store"
)

// application bundles the wired components of one running service instance.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	handler *api.Handler
}

// newApplication wires stores, services, and the dispatcher for the
// configured database driver. It performs no I/O; the database is assumed
// open and migrated.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.PasswordPepper, cfg.Auth.HashIterations)

	var (
		userStore    store.UserStore
		productStore store.ProductStore
		orderStore   store.OrderStore
	)
	switch cfg.Database.Driver {
	case "postgres":
		userStore = postgres.NewPostgresUserStore(db, log)
		productStore = postgres.NewPostgresProductStore(db, log)
		orderStore = postgres.NewPostgresOrderStore(db, log)
	case "sqlite":
		userStore = sqlite.NewSQLiteUserStore(db, log)
		productStore = sqlite.NewSQLiteProductStore(db, log)
		orderStore = sqlite.NewSQLiteOrderStore(db, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	users := service.NewUserService(db, userStore, tokens, hasher, log)
	products := service.NewProductService(db, productStore, log)
	orders := service.NewOrderService(db, orderStore, productStore, log)

	dispatcher := rpc.NewDispatcher(log)
	service.RegisterAll(dispatcher, tokens, users, products, orders)

	return &application{
		config:  cfg,
		logger:  log,
		db:      db,
		handler: api.NewHandler(dispatcher, log),
	}, nil
}

// Run serves HTTP until the process receives a shutdown signal.
func (app *application) Run(ctx context.Context) error {
	return app.serve(ctx, app.setupRouter())
}
