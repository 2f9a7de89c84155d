package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"metalmart-gateway/internal/core/cache"
	"metalmart-gateway/internal/core/logger"
	"metalmart-gateway/internal/features/catalog/domain"
	"metalmart-gateway/internal/features/catalog/ports"

	"go.uber.org/zap"
)

// CatalogService serves catalogue reads through a Redis-backed cache and
// enriches listings with purchasable stock. Inventory lookups failing for a
// product never fail the listing; that product is just served without stock.
type CatalogService struct {
	catalog   ports.CatalogProvider
	inventory ports.InventoryProvider
	cache     cache.Cache
	ttl       time.Duration
	log       *zap.Logger
}

// NewCatalogService creates a new CatalogService with the given cache TTL.
func NewCatalogService(catalog ports.CatalogProvider, inventory ports.InventoryProvider, c cache.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		inventory: inventory,
		cache:     c,
		ttl:       ttl,
		log:       logger.Named("catalog"),
	}
}

// ListProducts returns the full catalogue with stock enrichment.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.ProductWithStock, error) {
	products, err := s.cachedList(ctx, "catalog:products", func() ([]domain.Product, error) {
		return s.catalog.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, products), nil
}

// GetProduct returns one product with stock enrichment.
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.ProductWithStock, error) {
	key := fmt.Sprintf("catalog:product:%s", productID)

	var product domain.Product
	if s.cacheGet(ctx, key, &product) {
		enriched := s.withStock(ctx, product)
		return &enriched, nil
	}

	fetched, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, fetched)
	enriched := s.withStock(ctx, *fetched)
	return &enriched, nil
}

// SearchProducts returns products matching the query, with stock enrichment.
// Search results are not cached; the query space is unbounded.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.ProductWithStock, error) {
	products, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, products), nil
}

// ProductsByCategory returns a category's products with stock enrichment.
func (s *CatalogService) ProductsByCategory(ctx context.Context, category string) ([]domain.ProductWithStock, error) {
	key := fmt.Sprintf("catalog:category:%s", category)
	products, err := s.cachedList(ctx, key, func() ([]domain.Product, error) {
		return s.catalog.ByCategory(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, products), nil
}

// GetInventory returns the stock position for one product, read through the cache.
func (s *CatalogService) GetInventory(ctx context.Context, productID string) (*domain.Inventory, error) {
	key := fmt.Sprintf("catalog:inventory:%s", productID)

	var inv domain.Inventory
	if s.cacheGet(ctx, key, &inv) {
		return &inv, nil
	}

	fetched, err := s.inventory.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, fetched)
	return fetched, nil
}

// cachedList reads a product list through the cache under the given key.
func (s *CatalogService) cachedList(ctx context.Context, key string, fetch func() ([]domain.Product, error)) ([]domain.Product, error) {
	var products []domain.Product
	if s.cacheGet(ctx, key, &products) {
		return products, nil
	}

	products, err := fetch()
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, products)
	return products, nil
}

// cacheGet reads and decodes a cache entry. A cache failure is a miss.
func (s *CatalogService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrKeyNotFound) {
			s.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("Cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// cacheSet encodes and stores a cache entry. Failures are logged, never surfaced.
func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// enrich attaches purchasable stock to each product.
func (s *CatalogService) enrich(ctx context.Context, products []domain.Product) []domain.ProductWithStock {
	enriched := make([]domain.ProductWithStock, 0, len(products))
	for _, product := range products {
		enriched = append(enriched, s.withStock(ctx, product))
	}
	return enriched
}

// withStock attaches purchasable stock to one product, tolerating failure.
func (s *CatalogService) withStock(ctx context.Context, product domain.Product) domain.ProductWithStock {
	enriched := domain.ProductWithStock{Product: product}

	inv, err := s.GetInventory(ctx, product.ID)
	if err != nil {
		s.log.Warn("Inventory lookup failed",
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		return enriched
	}

	available := inv.Available()
	enriched.AvailableStock = &available
	return enriched
}
