package handler

import (
	"metalmart-gateway/internal/features/cart/domain"
	"metalmart-gateway/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader carries the storefront session identifier. The gateway mints
// one when the client has none yet and echoes it back on every response.
const SessionHeader = "X-Session-ID"

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// updateQuantityRequest is the body of a quantity update.
type updateQuantityRequest struct {
	// Quantity is the new quantity; zero or below removes the line.
	Quantity int `json:"quantity"`
}

// session resolves the request's session id, minting one when absent, and
// echoes it on the response so the client can stick to it.
func session(c *fiber.Ctx) string {
	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	c.Set(SessionHeader, sessionID)
	return sessionID
}

// rayID returns the request id set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

// GetCart godoc
// @Summary Get the session cart
// @Description Returns the current cart view (items, total, count) for the session.
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} service.CartView
// @Router /api/cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.cartService.Get(session(c)))
}

// AddItem godoc
// @Summary Add a line item to the session cart
// @Description Merges the item into the cart; an existing product only gains quantity.
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Param item body domain.LineItem true "Line item to add"
// @Success 200 {object} service.CartView
// @Failure 400 {object} ErrorResponse
// @Router /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var item domain.LineItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	if item.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "product_id is required",
			RayID:   rayID(c),
		})
	}

	if item.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "quantity must be at least 1",
			RayID:   rayID(c),
		})
	}

	if item.UnitPrice.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "unit_price must not be negative",
			RayID:   rayID(c),
		})
	}

	return c.JSON(h.cartService.Add(session(c), item))
}

// UpdateQuantity godoc
// @Summary Set the quantity of a line item
// @Description A quantity of zero or below removes the line from the cart.
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Param productId path string true "Product ID"
// @Param body body updateQuantityRequest true "New quantity"
// @Success 200 {object} service.CartView
// @Failure 400 {object} ErrorResponse
// @Router /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "product id is required",
			RayID:   rayID(c),
		})
	}

	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	return c.JSON(h.cartService.SetQuantity(session(c), productID, req.Quantity))
}

// ClearCart godoc
// @Summary Clear the session cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} service.CartView
// @Router /api/cart [delete]
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	return c.JSON(h.cartService.Clear(session(c)))
}
