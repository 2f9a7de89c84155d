package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"metalmart-gateway/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogueAdapter_List verifies the product list is fetched and mapped.
func TestCatalogueAdapter_List(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		json.NewEncoder(w).Encode([]productResponse{
			{ID: "p1", Name: "Steel Beam", Price: decimal.NewFromFloat(10.50), Category: "structural", CreatedAt: created},
			{ID: "p2", Name: "Copper Pipe", Price: decimal.NewFromFloat(4.25), Category: "plumbing", CreatedAt: created},
		})
	}))
	defer server.Close()

	adapter := NewCatalogueAdapter(server.URL)
	products, err := adapter.List(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Steel Beam", products[0].Name)
	assert.True(t, decimal.NewFromFloat(10.50).Equal(products[0].Price))
	assert.Equal(t, created, products[0].CreatedAt)
}

// TestCatalogueAdapter_Get verifies the single-product lookup and 404 mapping.
func TestCatalogueAdapter_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/p1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(productResponse{ID: "p1", Name: "Steel Beam"})
	}))
	defer server.Close()

	adapter := NewCatalogueAdapter(server.URL)

	product, err := adapter.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Steel Beam", product.Name)

	_, err = adapter.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// TestCatalogueAdapter_Search verifies the query is escaped on the wire.
func TestCatalogueAdapter_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/search", r.URL.Path)
		assert.Equal(t, "steel beam", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]productResponse{{ID: "p1", Name: "Steel Beam"}})
	}))
	defer server.Close()

	adapter := NewCatalogueAdapter(server.URL)
	products, err := adapter.Search(context.Background(), "steel beam")
	require.NoError(t, err)
	require.Len(t, products, 1)
}

// TestCatalogueAdapter_ByCategory verifies the category route.
func TestCatalogueAdapter_ByCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/category/structural", r.URL.Path)
		json.NewEncoder(w).Encode([]productResponse{{ID: "p1", Category: "structural"}})
	}))
	defer server.Close()

	adapter := NewCatalogueAdapter(server.URL)
	products, err := adapter.ByCategory(context.Background(), "structural")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "structural", products[0].Category)
}

// TestCatalogueAdapter_ServerError verifies non-200 responses surface as errors.
func TestCatalogueAdapter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := NewCatalogueAdapter(server.URL)
	_, err := adapter.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// TestInventoryAdapter_Get verifies the stock lookup and 404 mapping.
func TestInventoryAdapter_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/inventory/p1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(inventoryResponse{ProductID: "p1", StockQuantity: 10, ReservedQuantity: 3})
	}))
	defer server.Close()

	adapter := NewInventoryAdapter(server.URL)

	inv, err := adapter.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Available())

	_, err = adapter.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
