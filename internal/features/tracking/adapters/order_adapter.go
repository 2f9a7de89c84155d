package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"metalmart-gateway/internal/core/httpclient"
	"metalmart-gateway/internal/features/tracking/domain"

	"github.com/shopspring/decimal"
)

// OrderAdapter implements ports.OrderProvider against the MetalMart order
// service's REST API.
type OrderAdapter struct {
	// baseURL is the order service base URL, without a trailing slash.
	baseURL string
	// client is the HTTP client used for API requests.
	client *http.Client
}

// NewOrderAdapter creates a new OrderAdapter for the given base URL.
func NewOrderAdapter(baseURL string) *OrderAdapter {
	return &OrderAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(10 * time.Second),
	}
}

// HealthCheck verifies the order service is reachable. Any HTTP response,
// including a 404, counts as healthy; only transport failures do not.
func (a *OrderAdapter) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/orders/healthcheck-probe/status", a.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("order service unreachable: %w", err)
	}
	resp.Body.Close()

	return nil
}

// GetOrderByToken fetches the order snapshot for a tracking token.
func (a *OrderAdapter) GetOrderByToken(ctx context.Context, token string) (*domain.OrderSnapshot, error) {
	url := fmt.Sprintf("%s/api/orders/track/%s", a.baseURL, token)
	return a.fetchOrder(ctx, url)
}

// GetOrder fetches the order snapshot by internal order id.
func (a *OrderAdapter) GetOrder(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	url := fmt.Sprintf("%s/api/orders/%s", a.baseURL, orderID)
	return a.fetchOrder(ctx, url)
}

// GetOrderStatus fetches just the current status by internal order id.
func (a *OrderAdapter) GetOrderStatus(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	url := fmt.Sprintf("%s/api/orders/%s/status", a.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrOrderNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("order service returned status: %d", resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return domain.OrderStatus(body.Status), nil
}

// fetchOrder executes a GET against the given URL and maps the response to a
// domain snapshot.
func (a *OrderAdapter) fetchOrder(ctx context.Context, url string) (*domain.OrderSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrOrderNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order service returned status: %d", resp.StatusCode)
	}

	var body orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return mapToDomain(body), nil
}

// mapToDomain converts a raw order service response into a domain snapshot.
func mapToDomain(o orderResponse) *domain.OrderSnapshot {
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, domain.OrderItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		})
	}

	return &domain.OrderSnapshot{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.CustomerName,
		ShippingAddress: domain.ShippingAddress{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		TotalAmount:   o.TotalAmount,
		Status:        domain.OrderStatus(o.Status),
		TrackingToken: o.TrackingToken,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// internal structs for mapping

// orderResponse represents the JSON structure of an order from the order service.
type orderResponse struct {
	// ID is the internal order id.
	ID string `json:"id"`
	// OrderNumber is the customer-facing order number.
	OrderNumber string `json:"order_number"`
	// CustomerEmail is the contact email for the order.
	CustomerEmail string `json:"customer_email"`
	// CustomerName is the customer's full name.
	CustomerName string `json:"customer_name"`
	// ShippingAddress holds the delivery address.
	ShippingAddress addressResponse `json:"shipping_address"`
	// TotalAmount is the order total.
	TotalAmount decimal.Decimal `json:"total_amount"`
	// Status is the current lifecycle stage.
	Status string `json:"status"`
	// TrackingToken is the opaque tracking identifier.
	TrackingToken string `json:"tracking_token"`
	// Items contains the order lines.
	Items []itemResponse `json:"items"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the order last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// addressResponse holds shipping address fields.
type addressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// itemResponse represents one order line in the response.
type itemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
}

// statusResponse is the lightweight status-only lookup response.
type statusResponse struct {
	Status string `json:"status"`
}
