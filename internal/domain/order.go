package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// Possible order status values
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the enumerated values. Update
// flows drop invalid statuses silently instead of rejecting the call.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Common validation errors for Order
var (
	ErrEmptyOrderBuyer      = errors.New("order buyer must be set")
	ErrEmptyOrderProduct    = errors.New("order product must be set")
	ErrInvalidOrderQuantity = errors.New("order quantity must be at least 1")
	ErrInvalidOrderStatus   = errors.New("order status must be pending, completed or cancelled")
)

// Order records a user buying a quantity of a product. TotalPrice is always
// derived server-side from the product's price at the time of the mutation.
// Product carries the read-time join snapshot of the referenced product; it
// is populated on every fetch and never stored.
type Order struct {
	ID         int64       `json:"id"                xml:"id"`
	UserID     int64       `json:"user_id"           xml:"user_id"`
	ProductID  int64       `json:"product_id"        xml:"product_id"`
	Quantity   int         `json:"quantity"          xml:"quantity"`
	TotalPrice float64     `json:"total_price"       xml:"total_price"`
	Status     OrderStatus `json:"status"            xml:"status"`
	CreatedAt  time.Time   `json:"created_at"        xml:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"        xml:"updated_at"`
	Product    *Product    `json:"product,omitempty" xml:"product,omitempty"`
}

// NewOrder creates a pending Order for buyerID purchasing quantity units of
// productID at unitPrice. The total is derived here, never accepted from the
// caller. The ID is assigned by the store on insert.
func NewOrder(buyerID, productID int64, quantity int, unitPrice float64) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		UserID:    buyerID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.Reprice(unitPrice)

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate checks if the Order has valid data.
// Returns an error if any field fails validation.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrEmptyOrderBuyer
	}

	if o.ProductID <= 0 {
		return ErrEmptyOrderProduct
	}

	if o.Quantity < 1 {
		return ErrInvalidOrderQuantity
	}

	if !o.Status.Valid() {
		return ErrInvalidOrderStatus
	}

	return nil
}

// Reprice recomputes the total from the current unit price and quantity.
func (o *Order) Reprice(unitPrice float64) {
	o.TotalPrice = unitPrice * float64(o.Quantity)
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID int64) bool {
	return o.UserID == userID
}
