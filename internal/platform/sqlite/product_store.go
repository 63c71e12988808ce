package sqlite

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

// SQLiteProductStore implements the store.ProductStore interface
// using a SQLite database as the storage backend.
type SQLiteProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteProductStore creates a new SQLite implementation of the
// ProductStore interface. If logger is nil, a default logger will be used.
func NewSQLiteProductStore(db store.DBTX, logger *slog.Logger) *SQLiteProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure SQLiteProductStore implements store.ProductStore interface
var _ store.ProductStore = (*SQLiteProductStore)(nil)

// Create implements store.ProductStore.Create
// It saves a new product and assigns the generated row ID.
func (s *SQLiteProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", product.UserID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO products (user_id, name, description, price, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		product.UserID,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", product.UserID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Error("failed to read inserted product id",
			slog.String("error", err.Error()))
		return err
	}
	product.ID = id

	log.Info("product created successfully",
		slog.Int64("product_id", product.ID),
		slog.Int64("owner_id", product.UserID))
	return nil
}

// GetByID implements store.ProductStore.GetByID
// Returns store.ErrProductNotFound if the product does not exist.
func (s *SQLiteProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, price, image_url, created_at, updated_at
		FROM products
		WHERE id = ?
	`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.Int64("product_id", id))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, err
	}

	return product, nil
}

// GetAll implements store.ProductStore.GetAll
// Returns an empty slice when no products exist.
func (s *SQLiteProductStore) GetAll(ctx context.Context) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, price, image_url, created_at, updated_at
		FROM products
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning product rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed products", slog.Int("count", len(products)))
	return products, nil
}

// Update implements store.ProductStore.Update
// Returns store.ErrProductNotFound if the product does not exist.
func (s *SQLiteProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, image_url = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	)

	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("product not found for update", slog.Int64("product_id", product.ID))
		return store.ErrProductNotFound
	}

	log.Info("product updated successfully", slog.Int64("product_id", product.ID))
	return nil
}

// Delete implements store.ProductStore.Delete
// Returns store.ErrProductNotFound if the product does not exist.
func (s *SQLiteProductStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("product not found for delete", slog.Int64("product_id", id))
		return store.ErrProductNotFound
	}

	log.Info("product deleted successfully", slog.Int64("product_id", id))
	return nil
}

// WithTx implements store.ProductStore.WithTx
// It returns a ProductStore bound to the given transaction.
func (s *SQLiteProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &SQLiteProductStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product

	err := row.Scan(
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

	return &product, nil
}
