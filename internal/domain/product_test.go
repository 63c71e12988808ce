package domain

import (
	"testing"
)

func TestNewProduct(t *testing.T) {
	t.Parallel()

	product, err := NewProduct(7, "Walnut Desk", "solid wood", 249.99, "https://cdn.example.com/desk.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if product.UserID != 7 {
		t.Errorf("Expected owner 7, got %d", product.UserID)
	}
	if product.Name != "Walnut Desk" || product.Price != 249.99 {
		t.Errorf("Unexpected product fields: %+v", product)
	}
	if product.CreatedAt.IsZero() || product.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	// Description and image URL are optional
	product, err = NewProduct(7, "Bare Shelf", "", 5.0, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if product.Description != "" || product.ImageURL != "" {
		t.Errorf("Expected empty description and image URL, got %+v", product)
	}
}

func TestProductValidate(t *testing.T) {
	t.Parallel()

	// Missing owner is rejected
	if _, err := NewProduct(0, "Chair", "", 10.0, ""); err != ErrEmptyProductOwner {
		t.Errorf("Expected error %v, got %v", ErrEmptyProductOwner, err)
	}

	// Blank name is rejected
	if _, err := NewProduct(1, "   ", "", 10.0, ""); err != ErrEmptyProductName {
		t.Errorf("Expected error %v, got %v", ErrEmptyProductName, err)
	}

	// Zero and negative prices are rejected
	if _, err := NewProduct(1, "Chair", "", 0, ""); err != ErrInvalidProductPrice {
		t.Errorf("Expected error %v, got %v", ErrInvalidProductPrice, err)
	}
	if _, err := NewProduct(1, "Chair", "", -3.5, ""); err != ErrInvalidProductPrice {
		t.Errorf("Expected error %v, got %v", ErrInvalidProductPrice, err)
	}
}

func TestProductOwnedBy(t *testing.T) {
	t.Parallel()

	product := Product{UserID: 7}
	if !product.OwnedBy(7) {
		t.Error("Expected the owner to own the product")
	}
	if product.OwnedBy(8) {
		t.Error("Expected a stranger not to own the product")
	}
}
