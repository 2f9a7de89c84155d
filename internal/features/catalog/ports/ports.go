package ports

import (
	"context"

	"metalmart-gateway/internal/features/catalog/domain"
)

// CatalogProvider reads products from the catalogue collaborator.
type CatalogProvider interface {
	// List returns the full catalogue.
	List(ctx context.Context) ([]domain.Product, error)

	// Get returns one product by id.
	// Returns domain.ErrProductNotFound when the catalogue has no such product.
	Get(ctx context.Context, productID string) (*domain.Product, error)

	// Search returns products matching the query.
	Search(ctx context.Context, query string) ([]domain.Product, error)

	// ByCategory returns products in the given category.
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
}

// InventoryProvider reads stock positions from the inventory collaborator.
type InventoryProvider interface {
	// Get returns the stock position for one product.
	// Returns domain.ErrProductNotFound when the product is untracked.
	Get(ctx context.Context, productID string) (*domain.Inventory, error)
}
