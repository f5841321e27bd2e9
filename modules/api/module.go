// Package api serves the storefront over HTTP with Fiber.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	analyticsmod "github.com/example/shoe-catalog/modules/analytics"
	"github.com/example/shoe-catalog/modules/cache"
	cartmod "github.com/example/shoe-catalog/modules/cart"
	catalogmod "github.com/example/shoe-catalog/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RateLimit configures the per-client limiter on /api/v1. Max <= 0 disables it.
type RateLimit struct {
	Max    int
	Window time.Duration
}

// Module provides the HTTP API.
type Module struct {
	app           *fiber.App
	port          int
	limit         RateLimit
	catalogPort   catalogmod.CatalogPort
	cartPort      cartmod.CartPort
	analyticsPort analyticsmod.AnalyticsPort
	cachePlugin   *cache.PluginModule
	logger        types.Logger
}

var (
	_ mono.Module          = (*Module)(nil)
	_ mono.DependentModule = (*Module)(nil)
	_ mono.UsePluginModule = (*Module)(nil)
)

// NewModule creates the API module listening on port.
func NewModule(port int, limit RateLimit, logger types.Logger) *Module {
	return &Module{
		port:   port,
		limit:  limit,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the modules the API calls.
func (m *Module) Dependencies() []string {
	return []string{catalogmod.ModuleName, cartmod.ModuleName, analyticsmod.ModuleName}
}

// SetDependencyServiceContainer wires a port per dependency.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case catalogmod.ModuleName:
		m.catalogPort = catalogmod.NewCatalogAdapter(container)
	case cartmod.ModuleName:
		m.cartPort = cartmod.NewCartAdapter(container)
	case analyticsmod.ModuleName:
		m.analyticsPort = analyticsmod.NewAnalyticsAdapter(container)
	}
}

// SetPlugin receives the cache plugin, whose Redis storage backs the limiter.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != cache.PluginName {
		return
	}
	if cachePlugin, ok := plugin.(*cache.PluginModule); ok {
		m.cachePlugin = cachePlugin
	}
}

// Start builds the Fiber app and starts listening.
func (m *Module) Start(_ context.Context) error {
	if m.catalogPort == nil || m.cartPort == nil || m.analyticsPort == nil {
		return fmt.Errorf("api dependencies not set")
	}

	var storage fiber.Storage
	if m.cachePlugin != nil && m.cachePlugin.Storage() != nil {
		storage = m.cachePlugin.Storage()
	}

	handlers := NewHandlers(m.catalogPort, m.cartPort, m.analyticsPort, m.logger)
	m.app = NewApp(handlers, m.limit, storage, m.logger)

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		m.logger.Info("Starting HTTP server", "addr", addr)
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("API module started",
		"port", m.port,
		"rate_limit", m.limit.Max,
		"shared_limiter", storage != nil)
	return nil
}

// Stop shuts the HTTP server down.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		m.logger.Info("Shutting down HTTP server")
		if err := m.app.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}
	m.logger.Info("API module stopped")
	return nil
}

// NewApp builds the Fiber app with middleware and routes. storage may be nil,
// in which case the limiter keeps its counters in memory.
func NewApp(h *Handlers, limit RateLimit, storage fiber.Storage, log types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Shoe Catalog",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, " + SessionHeader,
	}))

	app.Get("/health", h.HealthCheck)

	v1 := app.Group("/api/v1")
	if limit.Max > 0 {
		v1.Use(limiter.New(limiter.Config{
			Max:        limit.Max,
			Expiration: limit.Window,
			Storage:    storage,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many requests",
				})
			},
		}))
	}

	products := v1.Group("/products")
	products.Get("/", h.ListProducts)
	products.Get("/:id", h.GetProduct)

	v1.Get("/brands", h.ListBrands)

	cartGroup := v1.Group("/cart")
	cartGroup.Get("/", h.GetCart)
	cartGroup.Post("/items", h.AddCartItem)
	cartGroup.Put("/items/:id", h.UpdateCartItem)
	cartGroup.Delete("/items/:id", h.RemoveCartItem)

	admin := v1.Group("/admin")
	admin.Get("/stats", h.AdminStats)
	admin.Get("/products", h.AdminProducts)

	v1.Get("/analytics", h.Analytics)

	return app
}

// errorHandler renders errors that escape the handlers.
func errorHandler(log types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error("Unhandled error", "path", c.Path(), "method", c.Method(), "error", err)
		}

		return c.Status(code).JSON(ErrorResponse{
			Error:   "request_failed",
			Message: message,
		})
	}
}
