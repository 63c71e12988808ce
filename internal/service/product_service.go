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

// CreateProductInput carries the CreateProduct parameters. The owner is the
// authenticated caller, never an input.
type CreateProductInput struct {
	Name        string  `json:"name"        xml:"name" validate:"required"`
	Description string  `json:"description" xml:"description"`
	Price       float64 `json:"price"       xml:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url"   xml:"image_url"`
}

// GetProductInput identifies the product to fetch.
type GetProductInput struct {
	ID int64 `json:"id" xml:"id" validate:"required"`
}

// UpdateProductInput carries the UpdateProduct parameters. Nil fields are
// left unchanged. Description and ImageURL apply even when empty, clearing
// the stored value; an empty Name and a non-positive Price are dropped.
type UpdateProductInput struct {
	ID          int64    `json:"id"          xml:"id" validate:"required"`
	Name        *string  `json:"name"        xml:"name"`
	Description *string  `json:"description" xml:"description"`
	Price       *float64 `json:"price"       xml:"price"`
	ImageURL    *string  `json:"image_url"   xml:"image_url"`
}

// DeleteProductInput identifies the product to delete.
type DeleteProductInput struct {
	ID int64 `json:"id" xml:"id" validate:"required"`
}

// ProductService implements the product listing operations. Products are
// globally readable; mutations are owner-only with no admin override.
type ProductService struct {
	db       *sql.DB
	products store.ProductStore
	logger   *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(db *sql.DB, products store.ProductStore, logger *slog.Logger) *ProductService {
	if db == nil {
		panic("db cannot be nil")
	}
	if products == nil {
		panic("products cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductService{
		db:       db,
		products: products,
		logger:   logger.With(slog.String("component", "product_service")),
	}
}

// CreateProduct adds a listing owned by the caller.
func (s *ProductService) CreateProduct(ctx context.Context, claims *auth.Claims, in *CreateProductInput) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := domain.NewProduct(claims.UserID, in.Name, in.Description, in.Price, in.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.products.Create(ctx, product); err != nil {
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.Int64("caller_id", claims.UserID))
		return nil, err
	}

	log.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.Int64("caller_id", claims.UserID))

	return product, nil
}

// ListProducts returns every listing, ordered by ID.
func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	products, err := s.products.GetAll(ctx)
	if err != nil {
		log.Error("failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves one listing by ID.
func (s *ProductService) GetProduct(ctx context.Context, in *GetProductInput) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := s.products.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			log.Debug("product not found", slog.Int64("product_id", in.ID))
		} else {
			log.Error("failed to retrieve product",
				slog.String("error", err.Error()),
				slog.Int64("product_id", in.ID))
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	return product, nil
}

// UpdateProduct applies partial changes to a listing the caller owns. The
// resolve-authorize-write sequence runs in one transaction.
func (s *ProductService) UpdateProduct(ctx context.Context, claims *auth.Claims, in *UpdateProductInput) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var product *domain.Product
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txProducts := s.products.WithTx(tx)

		var err error
		product, err = txProducts.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if !product.OwnedBy(claims.UserID) {
			return fault.Unauthorized()
		}

		changed := false
		if in.Name != nil && *in.Name != "" {
			product.Name = *in.Name
			changed = true
		}
		if in.Description != nil {
			product.Description = *in.Description
			changed = true
		}
		if in.Price != nil && *in.Price > 0 {
			product.Price = *in.Price
			changed = true
		}
		if in.ImageURL != nil {
			product.ImageURL = *in.ImageURL
			changed = true
		}
		if !changed {
			return nil
		}

		product.UpdatedAt = time.Now().UTC()
		return txProducts.Update(ctx, product)
	})
	if err != nil {
		logMutationFailure(log, "update product", err,
			slog.Int64("product_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return nil, err
	}

	log.Info("product updated",
		slog.Int64("product_id", product.ID),
		slog.Int64("caller_id", claims.UserID))

	return product, nil
}

// DeleteProduct removes a listing the caller owns. Orders referencing it
// keep their rows but disappear from reads.
func (s *ProductService) DeleteProduct(ctx context.Context, claims *auth.Claims, in *DeleteProductInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txProducts := s.products.WithTx(tx)

		product, err := txProducts.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if !product.OwnedBy(claims.UserID) {
			return fault.Unauthorized()
		}

		return txProducts.Delete(ctx, in.ID)
	})
	if err != nil {
		logMutationFailure(log, "delete product", err,
			slog.Int64("product_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return err
	}

	log.Info("product deleted",
		slog.Int64("product_id", in.ID),
		slog.Int64("caller_id", claims.UserID))

	return nil
}
