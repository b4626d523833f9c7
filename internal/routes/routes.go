package routes

import (
	"time"

	"github.com/atomicsystems/atomic-backend/internal/config"
	"github.com/atomicsystems/atomic-backend/internal/handlers"
	"github.com/atomicsystems/atomic-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	areaHandler *handlers.IdentityAreaHandler,
	systemHandler *handlers.AtomicSystemHandler,
	goalHandler *handlers.IdentityGoalHandler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/health/db", healthHandler.CheckDB)

	// Auth — public, with a stricter limiter against credential stuffing
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimitMax,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	requireAuth := middleware.RequireAuth([]byte(cfg.JWTSecret))

	api.Post("/auth/logout", requireAuth, authHandler.Logout)
	api.Get("/auth/profile", requireAuth, authHandler.GetProfile)
	api.Put("/auth/profile", requireAuth, authHandler.UpdateProfile)

	areas := api.Group("/identity-areas", requireAuth)
	areas.Get("/", areaHandler.List)
	areas.Get("/:id", areaHandler.Get)
	areas.Post("/", areaHandler.Create)
	areas.Post("/reorder", areaHandler.Reorder)
	areas.Put("/:id", areaHandler.Update)
	areas.Delete("/:id", areaHandler.Delete)

	systems := api.Group("/atomic-systems", requireAuth)
	systems.Get("/", systemHandler.List)
	systems.Get("/:id", systemHandler.Get)
	systems.Post("/", systemHandler.Create)
	systems.Put("/:id", systemHandler.Update)
	systems.Delete("/:id", systemHandler.Delete)
	systems.Post("/:id/execute", systemHandler.Execute)

	goals := api.Group("/identity-goals", requireAuth)
	goals.Get("/", goalHandler.List)
	goals.Post("/reorder/:identityAreaId", goalHandler.Reorder)
	goals.Get("/:id", goalHandler.Get)
	goals.Post("/", goalHandler.Create)
	goals.Put("/:id", goalHandler.Update)
	goals.Patch("/:id/progress", goalHandler.UpdateProgress)
	goals.Delete("/:id", goalHandler.Delete)
}
