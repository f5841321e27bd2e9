package api

import (
	"errors"
	"strconv"

	"github.com/example/shoe-catalog/domain/cart"
	analyticsmod "github.com/example/shoe-catalog/modules/analytics"
	cartmod "github.com/example/shoe-catalog/modules/cart"
	catalogmod "github.com/example/shoe-catalog/modules/catalog"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides the HTTP handlers of the storefront API.
type Handlers struct {
	catalog   catalogmod.CatalogPort
	cart      cartmod.CartPort
	analytics analyticsmod.AnalyticsPort
	logger    types.Logger
}

// NewHandlers creates handlers over the module ports.
func NewHandlers(
	catalog catalogmod.CatalogPort,
	cartPort cartmod.CartPort,
	analytics analyticsmod.AnalyticsPort,
	logger types.Logger,
) *Handlers {
	return &Handlers{
		catalog:   catalog,
		cart:      cartPort,
		analytics: analytics,
		logger:    logger,
	}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

// ListProducts handles GET /api/v1/products?search=&brand=&sort=.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	resp, err := h.catalog.Query(c.UserContext(), &catalogmod.QueryRequest{
		Search: c.Query("search"),
		Brand:  c.Query("brand"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		return h.internalError(c, "Failed to query catalog", err)
	}
	return c.JSON(resp)
}

// GetProduct handles GET /api/v1/products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	resp, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return h.internalError(c, "Failed to get product", err)
	}
	if !resp.Found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Product not found",
		})
	}
	return c.JSON(resp.Product)
}

// ListBrands handles GET /api/v1/brands.
func (h *Handlers) ListBrands(c *fiber.Ctx) error {
	resp, err := h.catalog.Brands(c.UserContext())
	if err != nil {
		return h.internalError(c, "Failed to list brands", err)
	}
	return c.JSON(resp)
}

// GetCart handles GET /api/v1/cart.
func (h *Handlers) GetCart(c *fiber.Ctx) error {
	resp, err := h.cart.GetCart(c.UserContext(), sessionID(c))
	if err != nil {
		return h.cartError(c, err)
	}
	return c.JSON(resp)
}

// AddCartItem handles POST /api/v1/cart/items.
func (h *Handlers) AddCartItem(c *fiber.Ctx) error {
	var body AddCartItemRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	resp, err := h.cart.AddItem(c.UserContext(), &cartmod.AddItemRequest{
		SessionID: sessionID(c),
		ProductID: uint(body.ProductID),
		Size:      body.Size,
		Quantity:  quantity,
	})
	if err != nil {
		return h.cartError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateCartItem handles PUT /api/v1/cart/items/:id.
func (h *Handlers) UpdateCartItem(c *fiber.Ctx) error {
	var body UpdateCartItemRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.cart.UpdateItem(c.UserContext(), &cartmod.UpdateItemRequest{
		SessionID: sessionID(c),
		ItemID:    c.Params("id"),
		Quantity:  body.Quantity,
	})
	if err != nil {
		return h.cartError(c, err)
	}
	return c.JSON(resp)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:id.
func (h *Handlers) RemoveCartItem(c *fiber.Ctx) error {
	resp, err := h.cart.RemoveItem(c.UserContext(), &cartmod.RemoveItemRequest{
		SessionID: sessionID(c),
		ItemID:    c.Params("id"),
	})
	if err != nil {
		return h.cartError(c, err)
	}
	return c.JSON(resp)
}

// AdminStats handles GET /api/v1/admin/stats?threshold=.
func (h *Handlers) AdminStats(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	if threshold < 0 {
		return badRequest(c, "Threshold must not be negative")
	}

	resp, err := h.catalog.Stats(c.UserContext(), &catalogmod.StatsRequest{LowStockThreshold: threshold})
	if err != nil {
		return h.internalError(c, "Failed to compute stats", err)
	}
	return c.JSON(resp)
}

// AdminProducts handles GET /api/v1/admin/products?search=.
func (h *Handlers) AdminProducts(c *fiber.Ctx) error {
	resp, err := h.catalog.Inventory(c.UserContext(), &catalogmod.InventoryRequest{Search: c.Query("search")})
	if err != nil {
		return h.internalError(c, "Failed to search inventory", err)
	}
	return c.JSON(resp)
}

// Analytics handles GET /api/v1/analytics?limit=.
func (h *Handlers) Analytics(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", analyticsmod.DefaultTopN)
	if limit < 1 || limit > 100 {
		limit = analyticsmod.DefaultTopN
	}

	resp, err := h.analytics.Summary(c.UserContext(), limit)
	if err != nil {
		return h.internalError(c, "Failed to get analytics", err)
	}
	return c.JSON(resp)
}

// cartError maps cart rule violations to client errors.
func (h *Handlers) cartError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, cart.ErrSizeRequired),
		errors.Is(err, cart.ErrInvalidSize),
		errors.Is(err, cart.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "invalid_request"
	case errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		status, code = fiber.StatusNotFound, "not_found"
	case errors.Is(err, cart.ErrOutOfStock):
		status, code = fiber.StatusConflict, "out_of_stock"
	default:
		return h.internalError(c, "Cart operation failed", err)
	}

	return c.Status(status).JSON(ErrorResponse{Error: code, Message: err.Error()})
}

func (h *Handlers) internalError(c *fiber.Ctx, message string, err error) error {
	h.logger.Error(message, "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func parseProductID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func sessionID(c *fiber.Ctx) string {
	if id := c.Get(SessionHeader); id != "" {
		return id
	}
	return cart.AnonymousSession
}
