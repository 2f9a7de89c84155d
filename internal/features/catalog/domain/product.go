package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when the catalogue has no such product.
var ErrProductNotFound = errors.New("product not found")

// Product is one catalogue entry.
type Product struct {
	// ID identifies the product.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Description is the long-form product description.
	Description string `json:"description"`
	// Price is the current unit price.
	Price decimal.Decimal `json:"price"`
	// ImageURL points to the product image.
	ImageURL string `json:"image_url"`
	// Category is the catalogue category slug.
	Category string `json:"category"`
	// CreatedAt is when the product was listed.
	CreatedAt time.Time `json:"created_at"`
}

// Inventory is the stock position for one product.
type Inventory struct {
	// ProductID identifies the product.
	ProductID string `json:"product_id"`
	// StockQuantity is the on-hand quantity.
	StockQuantity int `json:"stock_quantity"`
	// ReservedQuantity is the quantity held by open orders.
	ReservedQuantity int `json:"reserved_quantity"`
}

// Available returns the purchasable quantity, never below zero.
func (i Inventory) Available() int {
	available := i.StockQuantity - i.ReservedQuantity
	if available < 0 {
		return 0
	}
	return available
}

// ProductWithStock is a catalogue entry enriched with its purchasable stock.
// AvailableStock is nil when the inventory lookup failed; the listing is
// still served.
type ProductWithStock struct {
	Product
	// AvailableStock is the purchasable quantity, absent on inventory failure.
	AvailableStock *int `json:"available_stock,omitempty"`
}
