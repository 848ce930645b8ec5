package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	pool         *pgxpool.Pool
	rdb          *redis.Client
	modelVersion string
	startAt      time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, modelVersion string) *HealthHandler {
	return &HealthHandler{
		pool:         pool,
		rdb:          rdb,
		modelVersion: modelVersion,
		startAt:      time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
// The database is required; Redis is optional and a disabled or unreachable
// publisher never makes the service unready on its own, though an unreachable
// one is reported as degraded.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	dbCheck, dbUp := h.checkDB(ctx)
	redisCheck, redisOK := h.checkRedis(ctx)

	overallStatus := "healthy"
	if !dbUp || !redisOK {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbCheck,
			"redis":    redisCheck,
		},
		"model_version":  h.modelVersion,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	}

	status := fiber.StatusOK
	if !dbUp {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func (h *HealthHandler) checkDB(ctx context.Context) (fiber.Map, bool) {
	start := time.Now()
	err := h.pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}, false
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}, true
}

func (h *HealthHandler) checkRedis(ctx context.Context) (fiber.Map, bool) {
	if h.rdb == nil {
		return fiber.Map{"status": "disabled"}, true
	}

	start := time.Now()
	err := h.rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}, false
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}, true
}
