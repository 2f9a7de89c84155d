package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRequest indicates a checkout request missing required fields.
var ErrInvalidRequest = errors.New("invalid checkout request")

// ErrEmptyCart indicates a checkout attempt with no items in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// RejectionError is a checkout the collaborator turned down. Message carries
// the server's wording verbatim so the storefront can show it as-is.
type RejectionError struct {
	// Message is the rejection reason as returned by the checkout service.
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("checkout rejected: %s", e.Message)
}

// ShippingAddress is the delivery address submitted with a checkout.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Item is one cart line submitted to the checkout service.
type Item struct {
	// ProductID identifies the product.
	ProductID string `json:"product_id"`
	// ProductName is the display name at submission time.
	ProductName string `json:"product_name"`
	// Quantity is how many units are ordered.
	Quantity int `json:"quantity"`
	// UnitPrice is the per-unit price at submission time.
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Request is a full checkout submission.
type Request struct {
	// CustomerEmail is the contact email for the order.
	CustomerEmail string `json:"customer_email"`
	// CustomerName is the customer's full name.
	CustomerName string `json:"customer_name"`
	// ShippingAddress is the delivery address.
	ShippingAddress ShippingAddress `json:"shipping_address"`
	// Items are the cart lines being purchased.
	Items []Item `json:"items"`
}

// Validate checks the required customer and address fields.
func (r Request) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"customer_email", r.CustomerEmail},
		{"customer_name", r.CustomerName},
		{"shipping_address.street", r.ShippingAddress.Street},
		{"shipping_address.city", r.ShippingAddress.City},
		{"shipping_address.state", r.ShippingAddress.State},
		{"shipping_address.zip_code", r.ShippingAddress.ZipCode},
		{"shipping_address.country", r.ShippingAddress.Country},
	}

	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRequest, f.name)
		}
	}
	return nil
}

// Result is a successful checkout outcome.
type Result struct {
	// OrderID is the internal id of the created order.
	OrderID string `json:"order_id"`
	// OrderNumber is the customer-facing order number.
	OrderNumber string `json:"order_number"`
	// TrackingToken is the opaque token for tracking the order.
	TrackingToken string `json:"tracking_token"`
	// TotalAmount is the charged total.
	TotalAmount decimal.Decimal `json:"total_amount"`
}
