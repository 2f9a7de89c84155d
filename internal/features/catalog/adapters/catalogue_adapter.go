package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"metalmart-gateway/internal/core/httpclient"
	"metalmart-gateway/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
)

// CatalogueAdapter implements ports.CatalogProvider against the MetalMart
// catalogue service's REST API.
type CatalogueAdapter struct {
	// baseURL is the catalogue service base URL, without a trailing slash.
	baseURL string
	// client is the HTTP client used for API requests.
	client *http.Client
}

// NewCatalogueAdapter creates a new CatalogueAdapter for the given base URL.
func NewCatalogueAdapter(baseURL string) *CatalogueAdapter {
	return &CatalogueAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(10 * time.Second),
	}
}

// List fetches the full catalogue.
func (a *CatalogueAdapter) List(ctx context.Context) ([]domain.Product, error) {
	return a.fetchList(ctx, fmt.Sprintf("%s/api/products", a.baseURL))
}

// Get fetches one product by id.
func (a *CatalogueAdapter) Get(ctx context.Context, productID string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/products/%s", a.baseURL, productID)

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
		return nil, fmt.Errorf("catalogue service returned status: %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	product := mapProduct(body)
	return &product, nil
}

// Search fetches products matching the query.
func (a *CatalogueAdapter) Search(ctx context.Context, query string) ([]domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/products/search?q=%s", a.baseURL, url.QueryEscape(query))
	return a.fetchList(ctx, reqURL)
}

// ByCategory fetches products in the given category.
func (a *CatalogueAdapter) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/products/category/%s", a.baseURL, url.PathEscape(category))
	return a.fetchList(ctx, reqURL)
}

// fetchList executes a GET against the given URL and maps the product list.
func (a *CatalogueAdapter) fetchList(ctx context.Context, reqURL string) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalogue service returned status: %d", resp.StatusCode)
	}

	var body []productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	products := make([]domain.Product, 0, len(body))
	for _, p := range body {
		products = append(products, mapProduct(p))
	}
	return products, nil
}

// mapProduct converts a raw catalogue response into a domain product.
func mapProduct(p productResponse) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

// internal structs for mapping

// productResponse represents the JSON structure of a catalogue product.
type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}
