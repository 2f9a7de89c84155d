package service

import (
	"context"

	"metalmart-gateway/internal/core/logger"
	cartservice "metalmart-gateway/internal/features/cart/service"
	"metalmart-gateway/internal/features/checkout/domain"
	"metalmart-gateway/internal/features/checkout/ports"

	"go.uber.org/zap"
)

// CustomerDetails is what the storefront supplies at checkout; the item lines
// come from the session cart, never from the request body.
type CustomerDetails struct {
	// CustomerEmail is the contact email for the order.
	CustomerEmail string `json:"customer_email"`
	// CustomerName is the customer's full name.
	CustomerName string `json:"customer_name"`
	// ShippingAddress is the delivery address.
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
}

// CheckoutService builds checkout submissions from session carts.
type CheckoutService struct {
	carts    *cartservice.CartService
	provider ports.CheckoutProvider
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(carts *cartservice.CartService, provider ports.CheckoutProvider) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		provider: provider,
	}
}

// Submit validates the details, submits the session's cart and clears the
// cart only after the checkout service accepts the order. The cart survives
// rejections and transport failures so the customer can retry.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, details CustomerDetails) (*domain.Result, error) {
	lines := s.carts.Items(sessionID)
	items := make([]domain.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.Item{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	request := domain.Request{
		CustomerEmail:   details.CustomerEmail,
		CustomerName:    details.CustomerName,
		ShippingAddress: details.ShippingAddress,
		Items:           items,
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	result, err := s.provider.Submit(ctx, request)
	if err != nil {
		return nil, err
	}

	s.carts.Clear(sessionID)
	logger.Get().Info("Checkout completed",
		zap.String("order_number", result.OrderNumber),
		zap.Int("item_count", len(items)),
	)

	return result, nil
}
