package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"metalmart-gateway/internal/core/httpclient"
	"metalmart-gateway/internal/features/checkout/domain"

	"github.com/shopspring/decimal"
)

// rejectionFallback is shown when the checkout service rejects without a message.
const rejectionFallback = "Checkout failed. Please try again."

// CheckoutAdapter implements ports.CheckoutProvider against the MetalMart
// checkout service's REST API.
type CheckoutAdapter struct {
	// baseURL is the checkout service base URL, without a trailing slash.
	baseURL string
	// client is the HTTP client used for API requests.
	client *http.Client
}

// NewCheckoutAdapter creates a new CheckoutAdapter for the given base URL.
func NewCheckoutAdapter(baseURL string) *CheckoutAdapter {
	return &CheckoutAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(15 * time.Second),
	}
}

// Submit posts the checkout request. Non-2xx responses surface the service's
// own message as a rejection; there is no automatic retry.
func (a *CheckoutAdapter) Submit(ctx context.Context, request domain.Request) (*domain.Result, error) {
	payload, err := json.Marshal(mapToWire(request))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/api/checkout", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var body checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return nil, &domain.RejectionError{Message: rejectionFallback}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !body.Success {
		message := body.Message
		if message == "" {
			message = rejectionFallback
		}
		return nil, &domain.RejectionError{Message: message}
	}

	return &domain.Result{
		OrderID:       body.OrderID,
		OrderNumber:   body.OrderNumber,
		TrackingToken: body.TrackingToken,
		TotalAmount:   body.TotalAmount,
	}, nil
}

// mapToWire converts a domain request into the checkout service's JSON shape.
func mapToWire(r domain.Request) checkoutRequest {
	items := make([]checkoutItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, checkoutItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice.InexactFloat64(),
		})
	}

	return checkoutRequest{
		CustomerEmail: r.CustomerEmail,
		CustomerName:  r.CustomerName,
		ShippingAddress: checkoutAddress{
			Street:  r.ShippingAddress.Street,
			City:    r.ShippingAddress.City,
			State:   r.ShippingAddress.State,
			ZipCode: r.ShippingAddress.ZipCode,
			Country: r.ShippingAddress.Country,
		},
		Items: items,
	}
}

// internal structs for mapping

// checkoutRequest is the JSON body posted to the checkout service.
type checkoutRequest struct {
	CustomerEmail   string          `json:"customer_email"`
	CustomerName    string          `json:"customer_name"`
	ShippingAddress checkoutAddress `json:"shipping_address"`
	Items           []checkoutItem  `json:"items"`
}

// checkoutAddress holds shipping address fields on the wire.
type checkoutAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// checkoutItem is one cart line on the wire. The checkout service decodes
// the price as a plain JSON number under "price", so it is encoded as a
// float here rather than through decimal's global marshalling mode.
type checkoutItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// checkoutResponse is the checkout service's reply, success or rejection.
type checkoutResponse struct {
	// Success reports whether the order was created.
	Success bool `json:"success"`
	// OrderID is the internal id of the created order.
	OrderID string `json:"order_id"`
	// OrderNumber is the customer-facing order number.
	OrderNumber string `json:"order_number"`
	// TrackingToken is the opaque tracking identifier.
	TrackingToken string `json:"tracking_token"`
	// TotalAmount is the charged total.
	TotalAmount decimal.Decimal `json:"total_amount"`
	// Message carries the rejection reason when Success is false.
	Message string `json:"message"`
}
