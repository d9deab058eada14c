package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/scentquiz/internal/catalog"
	"github.com/example/scentquiz/internal/config"
	"github.com/example/scentquiz/internal/handlers"
	"github.com/example/scentquiz/internal/middleware"
	"github.com/example/scentquiz/internal/session"
)

// Deps are the long-lived services the routes need.
type Deps struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Sessions session.Store
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Deps) {
	cfg := deps.Config

	quizHandler := handlers.NewQuizHandler()
	productHandler := handlers.NewProductHandler(deps.Catalog)
	recommendationHandler := handlers.NewRecommendationHandler(deps.Catalog, cfg.UTMSource)
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Catalog, cfg.UTMSource)
	eventHandler := handlers.NewEventHandler()
	adminHandler := handlers.NewAdminHandler(cfg, deps.Catalog)

	app.Get("/health", handlers.Health(deps.Catalog.Len))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	throttle := limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		},
	})

	// Quiz
	api.Get("/quiz/steps", quizHandler.Steps)

	// Catalog
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)

	api.Post("/recommendations", throttle, recommendationHandler.Create)
	api.Post("/events", throttle, eventHandler.Track)

	// Sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Delete("/:id", sessionHandler.Delete)
	sessions.Put("/:id/profile", sessionHandler.SetProfile)
	sessions.Patch("/:id/answers", sessionHandler.UpdateAnswers)
	sessions.Post("/:id/start", sessionHandler.Start)
	sessions.Post("/:id/next", sessionHandler.Next)
	sessions.Post("/:id/previous", sessionHandler.Previous)
	sessions.Post("/:id/reset", sessionHandler.Reset)
	sessions.Post("/:id/clear", sessionHandler.Clear)
	sessions.Post("/:id/complete", sessionHandler.Complete)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/login", throttle, adminHandler.Login)

	adminCatalog := admin.Group("/catalog", middleware.AdminAuth(cfg))
	adminCatalog.Post("/reload", adminHandler.ReloadCatalog)
	adminCatalog.Get("/stats", adminHandler.CatalogStats)
}
