// Package order implements cart checkout and order management. Checkout is a
// single transaction: the cart's product rows are locked with FOR UPDATE and
// stock is decremented under a stock >= quantity predicate, so concurrent
// checkouts of the last unit serialize and exactly one succeeds. That pair of
// guards is the whole concurrency story; nothing outside the transaction
// touches stock.
package order

import (
	"errors"
	"time"
)

const (
	StatusPending   = "PENDING"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

var ErrShippingInfoRequired = errors.New("shipping provider and tracking number are required for SHIPPED status")

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ValidateStatusChange enforces the rule that a SHIPPED order must carry
// shipment details. Other transitions are plain admin edits.
func ValidateStatusChange(status, provider, tracking string) error {
	if !validStatus(status) {
		return errors.New("unknown order status")
	}
	if status == StatusShipped && (provider == "" || tracking == "") {
		return ErrShippingInfoRequired
	}
	return nil
}

type Order struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ShippingName     string    `json:"shipping_name"`
	ShippingAddress  string    `json:"shipping_address"`
	ShippingPhone    string    `json:"shipping_phone"`
	PaymentSlipURL   string    `json:"payment_slip_url"`
	// NUMERIC -> string
	TotalAmount      string    `json:"total_amount"`
	Status           string    `json:"status"`
	ShippingProvider *string   `json:"shipping_provider,omitempty"`
	TrackingNumber   *string   `json:"tracking_number,omitempty"`
	UserName         string    `json:"user_name,omitempty"` // joined for admin views
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Item is a frozen snapshot of a purchased product line. Name and price are
// captured at checkout and never track later product edits.
type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	// Joined from the live product for display; empty when the product was deleted.
	ImageURLs []string `json:"image_urls,omitempty"`
}

type OrderWithItems struct {
	Order
	Items []Item `json:"items"`
}
