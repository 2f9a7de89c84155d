package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrOrderNotFound is returned when the order service knows no order for the
// given token or id.
var ErrOrderNotFound = errors.New("order not found")

// OrderStatus represents one stage of the order lifecycle, as reported by the
// order service.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been created but not picked up yet.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing indicates the order processor is working on the order.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusConfirmed indicates the order has been confirmed for shipment.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusShipped indicates the order has been handed to the carrier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered indicates the order has arrived.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ProgressSteps is the fixed ordered sequence of lifecycle stages rendered by
// the tracking progress bar. Cancelled is deliberately absent: it has no
// position on the bar.
var ProgressSteps = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// IsTerminal reports whether no further status change is expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ProgressPosition locates the status within ProgressSteps. The boolean is
// false for statuses outside the sequence (notably cancelled and anything
// unknown); consumers render those as "no progress" alongside the raw status.
func (s OrderStatus) ProgressPosition() (int, bool) {
	for i, step := range ProgressSteps {
		if step == s {
			return i, true
		}
	}
	return -1, false
}

// ShippingAddress is the delivery address attached to an order.
type ShippingAddress struct {
	// Street is the street line of the address.
	Street string `json:"street"`
	// City is the city of the address.
	City string `json:"city"`
	// State is the state or province of the address.
	State string `json:"state"`
	// ZipCode is the postal code of the address.
	ZipCode string `json:"zip_code"`
	// Country is the country of the address.
	Country string `json:"country"`
}

// OrderItem represents an individual item within an order.
type OrderItem struct {
	// ID is the unique identifier of the order line.
	ID string `json:"id"`
	// ProductID is the identifier of the purchased product.
	ProductID string `json:"product_id"`
	// ProductName is the product name at the time of purchase.
	ProductName string `json:"product_name"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// PriceAtTime is the per-unit price at the time of purchase.
	PriceAtTime decimal.Decimal `json:"price_at_time"`
}

// OrderSnapshot is an immutable view of order state fetched at one point in
// time. Each poll produces a fresh snapshot that fully replaces the previous
// one; snapshots are never partially merged.
type OrderSnapshot struct {
	// ID is the order service's internal identifier.
	ID string `json:"id"`
	// OrderNumber is the customer-facing order number.
	OrderNumber string `json:"order_number"`
	// CustomerEmail is the contact email for the order.
	CustomerEmail string `json:"customer_email"`
	// CustomerName is the customer's full name.
	CustomerName string `json:"customer_name"`
	// ShippingAddress is the delivery address.
	ShippingAddress ShippingAddress `json:"shipping_address"`
	// TotalAmount is the order total.
	TotalAmount decimal.Decimal `json:"total_amount"`
	// Status is the lifecycle stage at the time of the fetch.
	Status OrderStatus `json:"status"`
	// TrackingToken is the opaque token used to look the order up without auth.
	TrackingToken string `json:"tracking_token"`
	// Items are the order lines.
	Items []OrderItem `json:"items"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the order last changed.
	UpdatedAt time.Time `json:"updated_at"`
}
