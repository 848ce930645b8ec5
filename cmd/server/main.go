package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/newscheck/newscheck-go/internal/classifier"
	"github.com/newscheck/newscheck-go/internal/config"
	"github.com/newscheck/newscheck-go/internal/db"
	"github.com/newscheck/newscheck-go/internal/handler"
	"github.com/newscheck/newscheck-go/internal/middleware"
	"github.com/newscheck/newscheck-go/internal/repository"
	"github.com/newscheck/newscheck-go/internal/router"
	"github.com/newscheck/newscheck-go/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "newscheck-api")

	// The model artifact is required: without it there is nothing to serve.
	clf, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("failed to load model artifact: %v", err)
	}
	log.Printf("model loaded: version=%s", clf.Version())

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	events := service.NewEventService(cfg.RedisURL)
	defer events.Close()

	tracker := service.NewTrackingService(cfg.TrackingURI, cfg.TrackingExperiment, clf.Version())
	if tracker == nil {
		log.Println("tracking: no URI configured, experiment tracking disabled")
	}

	repo := repository.NewPredictionRepo(pool)
	svc := service.NewPredictionService(repo, clf, events, tracker)

	handler.InitMetrics(pool)
	if stats, err := repo.ComputeStats(ctx); err == nil {
		handler.RefreshGauges(stats)
	} else {
		log.Printf("initial stats refresh failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "NewsCheck API",
		ServerHeader: "NewsCheck",
	})

	router.Setup(app, &router.Handlers{
		Predict:     handler.NewPredictHandler(svc),
		Feedback:    handler.NewFeedbackHandler(svc),
		Predictions: handler.NewPredictionsHandler(svc),
		Stats:       handler.NewStatsHandler(svc),
		Health:      handler.NewHealthHandler(pool, events.Client(), clf.Version()),
	}, cfg.CORSOrigins)

	log.Printf("NewsCheck backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
