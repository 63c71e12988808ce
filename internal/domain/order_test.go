package domain

import (
	"testing"
)

func TestNewOrder(t *testing.T) {
	t.Parallel()

	order, err := NewOrder(1, 2, 3, 10.0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if order.UserID != 1 || order.ProductID != 2 {
		t.Errorf("Expected buyer 1 and product 2, got %d and %d", order.UserID, order.ProductID)
	}

	if order.Status != OrderStatusPending {
		t.Errorf("Expected status %s, got %s", OrderStatusPending, order.Status)
	}

	if order.TotalPrice != 30.0 {
		t.Errorf("Expected total 30.0, got %v", order.TotalPrice)
	}

	// Quantity below 1 is rejected
	_, err = NewOrder(1, 2, 0, 10.0)
	if err != ErrInvalidOrderQuantity {
		t.Errorf("Expected error %v, got %v", ErrInvalidOrderQuantity, err)
	}

	// Missing buyer is rejected
	_, err = NewOrder(0, 2, 1, 10.0)
	if err != ErrEmptyOrderBuyer {
		t.Errorf("Expected error %v, got %v", ErrEmptyOrderBuyer, err)
	}

	// Missing product is rejected
	_, err = NewOrder(1, 0, 1, 10.0)
	if err != ErrEmptyOrderProduct {
		t.Errorf("Expected error %v, got %v", ErrEmptyOrderProduct, err)
	}
}

func TestOrderReprice(t *testing.T) {
	t.Parallel()

	order := Order{Quantity: 2}
	order.Reprice(9.99)
	if order.TotalPrice != 19.98 {
		t.Errorf("Expected total 19.98, got %v", order.TotalPrice)
	}

	order.Quantity = 3
	order.Reprice(15.0)
	if order.TotalPrice != 45.0 {
		t.Errorf("Expected total 45.0, got %v", order.TotalPrice)
	}
}

func TestOrderStatusValid(t *testing.T) {
	t.Parallel()

	valid := []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("Expected status %s to be valid", s)
		}
	}

	invalid := []OrderStatus{"", "shipped", "PENDING", "garbage"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("Expected status %q to be invalid", s)
		}
	}
}

func TestOrderValidateStatus(t *testing.T) {
	t.Parallel()

	order := Order{UserID: 1, ProductID: 1, Quantity: 1, Status: OrderStatus("shipped")}
	if err := order.Validate(); err != ErrInvalidOrderStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidOrderStatus, err)
	}
}

func TestOrderOwnedBy(t *testing.T) {
	t.Parallel()

	order := Order{UserID: 7}
	if !order.OwnedBy(7) {
		t.Error("Expected order to be owned by its buyer")
	}
	if order.OwnedBy(8) {
		t.Error("Expected order to not be owned by another user")
	}
}
