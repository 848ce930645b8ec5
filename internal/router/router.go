package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/newscheck/newscheck-go/internal/handler"
	"github.com/newscheck/newscheck-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Predict     *handler.PredictHandler
	Feedback    *handler.FeedbackHandler
	Predictions *handler.PredictionsHandler
	Stats       *handler.StatsHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus exposition
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	api.Post("/predict", h.Predict.Predict, middleware.NewPredictRateLimiter().Handler())
	api.Post("/feedback", h.Feedback.Submit, middleware.NewFeedbackRateLimiter().Handler())
	api.Get("/predictions", h.Predictions.List, middleware.NewListRateLimiter().Handler())
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
