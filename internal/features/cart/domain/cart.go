package domain

import (
	"github.com/shopspring/decimal"
)

// LineItem represents one product entry in a cart.
type LineItem struct {
	// ProductID is the identity key of the line item, unique within a cart.
	ProductID string `json:"product_id"`
	// ProductName is the display name captured when the product was first added.
	ProductName string `json:"product_name"`
	// UnitPrice is the per-unit price captured when the product was first added.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Quantity is the number of units. Always >= 1 while the line exists.
	Quantity int `json:"quantity"`
	// ImageURL is the product image captured when the product was first added.
	ImageURL string `json:"image_url"`
}

// Subtotal returns UnitPrice * Quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered collection of line items keyed by product identity.
// At most one line item exists per product; a line whose quantity is driven
// to zero or below is removed, never kept at zero. All operations are total
// functions over the current state and perform no I/O.
//
// Cart is not safe for concurrent use; callers own synchronization.
type Cart struct {
	items []LineItem
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add merges the given item into the cart. If a line with the same product
// already exists, only its quantity is incremented; name, price and image of
// the existing line are left untouched. Otherwise the item is appended,
// preserving insertion order.
func (c *Cart) Add(item LineItem) {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			if c.items[i].Quantity <= 0 {
				c.remove(item.ProductID)
			}
			return
		}
	}

	if item.Quantity <= 0 {
		return
	}
	c.items = append(c.items, item)
}

// SetQuantity sets the quantity of the line with the given product.
// A quantity of zero or below removes the line; removal of an absent
// product is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.remove(productID)
		return
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = nil
}

// Total returns the sum of unit price times quantity over all lines.
// An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Count returns the sum of all quantities, used for the cart badge.
func (c *Cart) Count() int {
	count := 0
	for _, li := range c.items {
		count += li.Quantity
	}
	return count
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// remove drops the line with the given product, keeping the order of the rest.
func (c *Cart) remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
