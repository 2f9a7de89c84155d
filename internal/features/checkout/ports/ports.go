package ports

import (
	"context"

	"metalmart-gateway/internal/features/checkout/domain"
)

// CheckoutProvider submits checkout requests to the checkout collaborator.
type CheckoutProvider interface {
	// Submit places the order. A business rejection comes back as a
	// *domain.RejectionError; transport failures as plain errors.
	Submit(ctx context.Context, request domain.Request) (*domain.Result, error)
}
