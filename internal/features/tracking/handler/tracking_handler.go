package handler

import (
	"errors"

	"metalmart-gateway/internal/core/logger"
	"metalmart-gateway/internal/features/tracking/domain"
	"metalmart-gateway/internal/features/tracking/poller"
	"metalmart-gateway/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler handles HTTP requests for order tracking and lookups.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Progress locates the order's status on the fixed five-stage progress bar.
type Progress struct {
	// Steps is the ordered stage sequence the bar renders.
	Steps []domain.OrderStatus `json:"steps"`
	// Position is the index of the current status within Steps, -1 if outside.
	Position int `json:"position"`
	// InSequence is false for statuses with no bar position (e.g. cancelled).
	InSequence bool `json:"in_sequence"`
}

// TrackingResponse is the live view of a tracking session or confirmation monitor.
type TrackingResponse struct {
	// Token is the tracking token (or order id for confirmation views).
	Token string `json:"token"`
	// State is the session state: loading, tracking, settled or failed.
	State string `json:"state"`
	// Order is the last good snapshot, absent while loading.
	Order *domain.OrderSnapshot `json:"order,omitempty"`
	// Progress is the progress-bar position, present whenever Order is.
	Progress *Progress `json:"progress,omitempty"`
}

// rayID returns the request id set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

// viewResponse shapes a poller view for the wire.
func viewResponse(view poller.View) TrackingResponse {
	resp := TrackingResponse{
		Token: view.Token,
		State: string(view.State),
		Order: view.Snapshot,
	}

	if view.Snapshot != nil {
		position, inSequence := view.Snapshot.Status.ProgressPosition()
		resp.Progress = &Progress{
			Steps:      domain.ProgressSteps,
			Position:   position,
			InSequence: inSequence,
		}
	}

	return resp
}

// TrackOrder godoc
// @Summary Get the live tracking view for a token
// @Description Starts a tracking session on first call and returns the current view. Polling runs server-side until the order settles or the session is torn down.
// @Tags tracking
// @Produce json
// @Param token path string true "Tracking token"
// @Success 200 {object} TrackingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/track/{token} [get]
func (h *TrackingHandler) TrackOrder(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking token is required",
			RayID:   rayID(c),
		})
	}

	view := h.trackingService.Track(token)
	if view.State == poller.StateFailed {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Order not found",
			RayID:   rayID(c),
		})
	}

	return c.JSON(viewResponse(view))
}

// StopTracking godoc
// @Summary Tear down the tracking session for a token
// @Description Cancels any pending poll for the token. A later GET restarts the session.
// @Tags tracking
// @Param token path string true "Tracking token"
// @Success 204
// @Router /api/orders/track/{token} [delete]
func (h *TrackingHandler) StopTracking(c *fiber.Ctx) error {
	h.trackingService.StopTracking(c.Params("token"))
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmOrder godoc
// @Summary Get the live confirmation view for an order
// @Description Starts a confirmation monitor on first call. Unlike tracking sessions, monitors keep refreshing past terminal statuses until torn down.
// @Tags tracking
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} TrackingResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{id}/confirmation [get]
func (h *TrackingHandler) ConfirmOrder(c *fiber.Ctx) error {
	view := h.trackingService.Confirm(c.Params("id"))
	if view.State == poller.StateFailed {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Order not found",
			RayID:   rayID(c),
		})
	}

	return c.JSON(viewResponse(view))
}

// StopConfirmation godoc
// @Summary Tear down the confirmation monitor for an order
// @Tags tracking
// @Param id path string true "Order ID"
// @Success 204
// @Router /api/orders/{id}/confirmation [delete]
func (h *TrackingHandler) StopConfirmation(c *fiber.Ctx) error {
	h.trackingService.StopConfirm(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// GetOrder godoc
// @Summary Get an order by internal id
// @Tags tracking
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderSnapshot
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{id} [get]
func (h *TrackingHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	order, err := h.trackingService.GetOrder(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "Order not found",
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to fetch order",
			zap.String("order_id", orderID),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(order)
}

// GetOrderStatus godoc
// @Summary Get just the status of an order
// @Tags tracking
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /api/orders/{id}/status [get]
func (h *TrackingHandler) GetOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	status, err := h.trackingService.GetOrderStatus(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "Order not found",
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to fetch order status",
			zap.String("order_id", orderID),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{"status": string(status)})
}
