package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"metalmart-gateway/internal/features/tracking/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderJSON = `{
	"id": "ord-1",
	"order_number": "MM-2024-0001",
	"customer_email": "demo@metalmart.dev",
	"customer_name": "Demo User",
	"shipping_address": {
		"street": "123 Demo Street",
		"city": "San Francisco",
		"state": "CA",
		"zip_code": "94102",
		"country": "USA"
	},
	"total_amount": 59.98,
	"status": "processing",
	"tracking_token": "tok-abc",
	"items": [
		{"id": "li-1", "product_id": "p1", "product_name": "Bear Hoodie", "quantity": 2, "price_at_time": 29.99}
	],
	"created_at": "2024-05-01T10:00:00Z",
	"updated_at": "2024-05-01T10:05:00Z"
}`

// TestOrderAdapter_GetOrderByToken verifies the snapshot mapping.
func TestOrderAdapter_GetOrderByToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/track/tok-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(orderJSON))
	}))
	defer srv.Close()

	adapter := NewOrderAdapter(srv.URL)

	snap, err := adapter.GetOrderByToken(context.Background(), "tok-abc")
	require.NoError(t, err)

	assert.Equal(t, "MM-2024-0001", snap.OrderNumber)
	assert.Equal(t, domain.OrderStatusProcessing, snap.Status)
	assert.Equal(t, "tok-abc", snap.TrackingToken)
	assert.True(t, decimal.RequireFromString("59.98").Equal(snap.TotalAmount))
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Bear Hoodie", snap.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("29.99").Equal(snap.Items[0].PriceAtTime))
	assert.Equal(t, "San Francisco", snap.ShippingAddress.City)
}

// TestOrderAdapter_NotFound verifies a 404 maps to ErrOrderNotFound.
func TestOrderAdapter_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Order not found", http.StatusNotFound)
	}))
	defer srv.Close()

	adapter := NewOrderAdapter(srv.URL)

	_, err := adapter.GetOrderByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = adapter.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = adapter.GetOrderStatus(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// TestOrderAdapter_ServerError verifies non-2xx responses surface as errors.
func TestOrderAdapter_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewOrderAdapter(srv.URL)

	_, err := adapter.GetOrderByToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order service returned status: 500")
}

// TestOrderAdapter_GetOrderStatus verifies the status-only lookup.
func TestOrderAdapter_GetOrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/ord-1/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "shipped"}`))
	}))
	defer srv.Close()

	adapter := NewOrderAdapter(srv.URL)

	status, err := adapter.GetOrderStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, status)
}

// TestOrderAdapter_HealthCheck verifies reachability is all that matters; a
// 404 still counts as healthy.
func TestOrderAdapter_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Order not found", http.StatusNotFound)
	}))

	adapter := NewOrderAdapter(srv.URL)
	assert.NoError(t, adapter.HealthCheck(context.Background()))

	srv.Close()
	assert.Error(t, adapter.HealthCheck(context.Background()))
}

// TestOrderAdapter_ContextCancelled verifies an already-cancelled context
// aborts the fetch.
func TestOrderAdapter_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(orderJSON))
	}))
	defer srv.Close()

	adapter := NewOrderAdapter(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.GetOrderByToken(ctx, "tok")
	assert.Error(t, err)
}
