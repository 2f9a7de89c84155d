package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"metalmart-gateway/internal/core/httpclient"
	"metalmart-gateway/internal/features/catalog/domain"
)

// InventoryAdapter implements ports.InventoryProvider against the MetalMart
// inventory service's REST API.
type InventoryAdapter struct {
	// baseURL is the inventory service base URL, without a trailing slash.
	baseURL string
	// client is the HTTP client used for API requests.
	client *http.Client
}

// NewInventoryAdapter creates a new InventoryAdapter for the given base URL.
func NewInventoryAdapter(baseURL string) *InventoryAdapter {
	return &InventoryAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(10 * time.Second),
	}
}

// Get fetches the stock position for one product.
func (a *InventoryAdapter) Get(ctx context.Context, productID string) (*domain.Inventory, error) {
	reqURL := fmt.Sprintf("%s/api/inventory/%s", a.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory service returned status: %d", resp.StatusCode)
	}

	var body inventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &domain.Inventory{
		ProductID:        body.ProductID,
		StockQuantity:    body.StockQuantity,
		ReservedQuantity: body.ReservedQuantity,
	}, nil
}

// inventoryResponse represents the JSON structure of an inventory record.
type inventoryResponse struct {
	ProductID        string `json:"product_id"`
	StockQuantity    int    `json:"stock_quantity"`
	ReservedQuantity int    `json:"reserved_quantity"`
}
