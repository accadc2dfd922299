package server

import (
	"time"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Products        *services.ProductService
	Sessions        *services.SessionManager
	DefaultMaxPrice decimal.Decimal
	// EventsEnabled is reported by the health endpoint.
	EventsEnabled bool
	// RequestLogging turns on the fiber request logger.
	RequestLogging bool
}

// New builds the Fiber app with every route registered.
func New(deps Dependencies) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	if deps.RequestLogging {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"sessions": deps.Sessions.Len(),
			"events":   deps.EventsEnabled,
		})
	})

	productHandler := handlers.NewProductHandler(deps.Products, deps.DefaultMaxPrice)
	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	cartHandler := handlers.NewCartHandler(deps.Products)
	authHandler := handlers.NewAuthHandler()
	orderHandler := handlers.NewOrderHandler()

	apiV1 := app.Group("/api/v1")

	// Public routes must be registered before the session group, whose
	// middleware applies to everything under /api/v1 that follows it.
	productHandler.RegisterRoutes(apiV1)
	sessionHandler.RegisterRoutes(apiV1)

	sessionRoutes := apiV1.Group("", middleware.SessionRequired(deps.Sessions))
	productHandler.RegisterSessionRoutes(sessionRoutes)
	cartHandler.RegisterRoutes(sessionRoutes)
	authHandler.RegisterRoutes(sessionRoutes)
	orderHandler.RegisterRoutes(sessionRoutes)

	return app
}
