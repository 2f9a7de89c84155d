package handler

import (
	"errors"

	"metalmart-gateway/internal/core/logger"
	"metalmart-gateway/internal/features/checkout/domain"
	"metalmart-gateway/internal/features/checkout/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHeader carries the storefront session identifier, shared with the
// cart endpoints so checkout submits the same session's cart.
const SessionHeader = "X-Session-ID"

// CheckoutHandler handles HTTP requests for checkout submission.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// session resolves the request's session id, minting one when absent, and
// echoes it on the response.
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

// Checkout godoc
// @Summary Submit the session cart for checkout
// @Description Places an order from the session's cart. The cart is cleared only when the checkout service accepts the order; rejections return the service's own message.
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Param details body service.CustomerDetails true "Customer and shipping details"
// @Success 200 {object} domain.Result
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var details service.CustomerDetails
	if err := c.BodyParser(&details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	result, err := h.checkoutService.Submit(c.Context(), session(c), details)
	if err != nil {
		var rejection *domain.RejectionError
		switch {
		case errors.As(err, &rejection):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: rejection.Message,
				RayID:   rayID(c),
			})
		case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Checkout failed",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(result)
}
