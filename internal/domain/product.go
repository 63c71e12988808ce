package domain

import (
	"errors"
	"strings"
	"time"
)

// Common validation errors for Product
var (
	ErrEmptyProductName    = errors.New("product name cannot be empty")
	ErrInvalidProductPrice = errors.New("product price must be positive")
	ErrEmptyProductOwner   = errors.New("product owner must be set")
)

// Product is a priced listing owned by the user who created it.
type Product struct {
	ID          int64     `json:"id"          xml:"id"`
	UserID      int64     `json:"user_id"     xml:"user_id"`
	Name        string    `json:"name"        xml:"name"`
	Description string    `json:"description" xml:"description"`
	Price       float64   `json:"price"       xml:"price"`
	ImageURL    string    `json:"image_url"   xml:"image_url"`
	CreatedAt   time.Time `json:"created_at"  xml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  xml:"updated_at"`
}

// NewProduct creates a Product owned by ownerID. Description and image URL
// may be empty. The ID is assigned by the store on insert.
func NewProduct(ownerID int64, name, description string, price float64, imageURL string) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		UserID:      ownerID,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product has valid data.
// Returns an error if any field fails validation.
func (p *Product) Validate() error {
	if p.UserID <= 0 {
		return ErrEmptyProductOwner
	}

	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProductName
	}

	if p.Price <= 0 {
		return ErrInvalidProductPrice
	}

	return nil
}

// OwnedBy reports whether userID owns the product. Only the owner may
// modify or delete it; there is no admin override for products.
func (p *Product) OwnedBy(userID int64) bool {
	return p.UserID == userID
}
