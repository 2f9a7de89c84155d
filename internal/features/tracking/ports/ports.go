package ports

import (
	"context"

	"metalmart-gateway/internal/features/tracking/domain"
)

// OrderProvider defines the interface to the external order service.
type OrderProvider interface {
	// GetOrderByToken retrieves the full order snapshot for a tracking token.
	GetOrderByToken(ctx context.Context, token string) (*domain.OrderSnapshot, error)
	// GetOrder retrieves the full order snapshot by internal order id.
	GetOrder(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)
	// GetOrderStatus retrieves just the current status by internal order id.
	GetOrderStatus(ctx context.Context, orderID string) (domain.OrderStatus, error)
}
