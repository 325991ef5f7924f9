package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/items-api/internal/api/http/handlers"
	"github.com/spec-kit/items-api/internal/auth"
	"github.com/spec-kit/items-api/internal/domain"
	"github.com/spec-kit/items-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Items          *handlers.ItemsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Get("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.GetByID)

	items := app.Group("/items", cfg.AuthMiddleware.Handle)
	items.Get("", cfg.Items.ListItems)
	items.Post("", cfg.Items.CreateItem)
	items.Put("/:id", cfg.Items.UpdateItem)
	items.Delete("/:id", cfg.Items.DeleteItem)
}
