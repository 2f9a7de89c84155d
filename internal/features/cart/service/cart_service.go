package service

import (
	"sync"

	"metalmart-gateway/internal/features/cart/domain"

	"github.com/shopspring/decimal"
)

// CartView is a read-only snapshot of one session's cart.
type CartView struct {
	// Items are the cart lines in insertion order.
	Items []domain.LineItem `json:"items"`
	// Total is the sum of unit price times quantity over all lines.
	Total decimal.Decimal `json:"total"`
	// Count is the sum of all quantities, used for the cart badge.
	Count int `json:"count"`
}

// CartService owns the session-scoped carts. Carts live in memory only and
// are lost when the gateway restarts; that matches the storefront's
// session-bound cart semantics rather than being a missing feature.
type CartService struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

// NewCartService creates an empty session cart store.
func NewCartService() *CartService {
	return &CartService{
		carts: make(map[string]*domain.Cart),
	}
}

// Get returns the current view of the session's cart, creating it if needed.
func (s *CartService) Get(sessionID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view(s.cart(sessionID))
}

// Add merges a line item into the session's cart and returns the new view.
func (s *CartService) Add(sessionID string, item domain.LineItem) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(sessionID)
	cart.Add(item)
	return view(cart)
}

// SetQuantity updates one line's quantity (zero or below removes it) and
// returns the new view.
func (s *CartService) SetQuantity(sessionID, productID string, quantity int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(sessionID)
	cart.SetQuantity(productID, quantity)
	return view(cart)
}

// Clear empties the session's cart and returns the (empty) view.
func (s *CartService) Clear(sessionID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(sessionID)
	cart.Clear()
	return view(cart)
}

// Items returns a copy of the session's cart lines in insertion order.
func (s *CartService) Items(sessionID string) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionID).Items()
}

// cart returns the session's cart, creating it on first use.
// Callers must hold the mutex.
func (s *CartService) cart(sessionID string) *domain.Cart {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = domain.NewCart()
		s.carts[sessionID] = cart
	}
	return cart
}

// view builds a CartView snapshot from a cart.
func view(cart *domain.Cart) CartView {
	return CartView{
		Items: cart.Items(),
		Total: cart.Total(),
		Count: cart.Count(),
	}
}
