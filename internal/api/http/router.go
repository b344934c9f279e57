package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirinho/cloud-file/internal/api/http/handlers"
	"github.com/kirinho/cloud-file/internal/auth"
	"github.com/kirinho/cloud-file/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Admin        *handlers.AdminHandler
	Guard        *auth.Guard
	LoginLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes. Everything outside /auth and /health
// sits behind the guard; /admin additionally requires the ADMIN role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	if cfg.LoginLimiter != nil {
		authGroup.Post("/login", cfg.LoginLimiter, cfg.Auth.Login)
	} else {
		authGroup.Post("/login", cfg.Auth.Login)
	}

	users := app.Group("/users", cfg.Guard.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Patch("/me", cfg.Users.Update)
	users.Delete("/me", cfg.Users.Delete)

	admin := app.Group("/admin/users", cfg.Guard.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/", cfg.Admin.List)
	admin.Post("/", cfg.Admin.Create)
	admin.Get("/:id", cfg.Admin.GetByID)
	admin.Patch("/:id", cfg.Admin.Update)
	admin.Delete("/:id", cfg.Admin.Delete)
}
