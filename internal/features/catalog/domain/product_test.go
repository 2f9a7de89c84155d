package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInventory_Available verifies reserved stock is subtracted and the
// result never goes negative.
func TestInventory_Available(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		reserved int
		want     int
	}{
		{"plain", 10, 3, 7},
		{"nothing reserved", 5, 0, 5},
		{"fully reserved", 4, 4, 0},
		{"over-reserved clamps to zero", 2, 5, 0},
		{"empty", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Inventory{StockQuantity: tt.stock, ReservedQuantity: tt.reserved}
			assert.Equal(t, tt.want, inv.Available())
		})
	}
}
