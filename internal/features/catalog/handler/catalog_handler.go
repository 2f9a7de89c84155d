package handler

import (
	"errors"

	"metalmart-gateway/internal/core/logger"
	"metalmart-gateway/internal/features/catalog/domain"
	"metalmart-gateway/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for the product catalogue.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// rayID returns the request id set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

// fail maps a service error to an HTTP error response.
func fail(c *fiber.Ctx, err error, what string) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "Product not found",
			RayID:   rayID(c),
		})
	}

	logger.Get().Error("Failed to fetch "+what,
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID(c),
	})
}

// ListProducts godoc
// @Summary List the product catalogue
// @Description Returns all products with their purchasable stock. Products whose stock lookup failed are served without the available_stock field.
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.ProductWithStock
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.ListProducts(c.Context())
	if err != nil {
		return fail(c, err, "products")
	}
	return c.JSON(products)
}

// GetProduct godoc
// @Summary Get a product by id
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.ProductWithStock
// @Failure 404 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalogService.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "product")
	}
	return c.JSON(product)
}

// SearchProducts godoc
// @Summary Search the catalogue
// @Tags catalog
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} domain.ProductWithStock
// @Failure 400 {object} ErrorResponse
// @Router /api/products/search [get]
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "query parameter q is required",
			RayID:   rayID(c),
		})
	}

	products, err := h.catalogService.SearchProducts(c.Context(), query)
	if err != nil {
		return fail(c, err, "search results")
	}
	return c.JSON(products)
}

// ProductsByCategory godoc
// @Summary List a category's products
// @Tags catalog
// @Produce json
// @Param category path string true "Category slug"
// @Success 200 {array} domain.ProductWithStock
// @Failure 500 {object} ErrorResponse
// @Router /api/products/category/{category} [get]
func (h *CatalogHandler) ProductsByCategory(c *fiber.Ctx) error {
	products, err := h.catalogService.ProductsByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return fail(c, err, "category products")
	}
	return c.JSON(products)
}

// GetInventory godoc
// @Summary Get the stock position for a product
// @Tags catalog
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} domain.Inventory
// @Failure 404 {object} ErrorResponse
// @Router /api/inventory/{productId} [get]
func (h *CatalogHandler) GetInventory(c *fiber.Ctx) error {
	inv, err := h.catalogService.GetInventory(c.Context(), c.Params("productId"))
	if err != nil {
		return fail(c, err, "inventory")
	}
	return c.JSON(inv)
}
