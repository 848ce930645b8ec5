package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/newscheck/newscheck-go/internal/model"
)

// Metrics holds all Prometheus collectors for the NewsCheck API.
// Counters and histograms are incremented on each predict/feedback event;
// gauges mirror store-wide aggregates and are refreshed from ComputeStats.
var Metrics = struct {
	PredictionsTotal    *prometheus.CounterVec
	InferenceLatency    prometheus.Histogram
	FeedbackTotal       *prometheus.CounterVec
	PersistenceFailures prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	TotalPredictions    prometheus.Gauge
	Accuracy            prometheus.Gauge
	AverageRating       prometheus.Gauge
	RealPredictions     prometheus.Gauge
	FakePredictions     prometheus.Gauge
	FeedbackRecords     prometheus.Gauge
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscheck_predictions_total",
			Help: "Total predictions served, by label.",
		},
		[]string{"label"},
	)

	Metrics.InferenceLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newscheck_inference_latency_seconds",
			Help:    "Classifier inference duration in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5},
		},
	)

	Metrics.FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newscheck_feedback_total",
			Help: "Total feedback submissions, by type.",
		},
		[]string{"feedback"},
	)

	Metrics.PersistenceFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newscheck_persistence_failures_total",
			Help: "Predictions served but not durably recorded.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newscheck_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.TotalPredictions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_stored_predictions",
			Help: "Total prediction records in the store.",
		},
	)

	Metrics.Accuracy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_accuracy_percent",
			Help: "Percentage of fed-back records marked correct.",
		},
	)

	Metrics.AverageRating = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_average_rating",
			Help: "Mean user rating across all rated records.",
		},
	)

	Metrics.RealPredictions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_real_predictions",
			Help: "Stored records predicted REAL.",
		},
	)

	Metrics.FakePredictions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_fake_predictions",
			Help: "Stored records predicted FAKE.",
		},
	)

	Metrics.FeedbackRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newscheck_feedback_records",
			Help: "Stored records carrying user feedback.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "newscheck_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "newscheck_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.PredictionsTotal,
		Metrics.InferenceLatency,
		Metrics.FeedbackTotal,
		Metrics.PersistenceFailures,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.TotalPredictions,
		Metrics.Accuracy,
		Metrics.AverageRating,
		Metrics.RealPredictions,
		Metrics.FakePredictions,
		Metrics.FeedbackRecords,
	)
}

// RefreshGauges mirrors store-wide aggregates into the exported gauges.
// Called once at startup and after every feedback submission; bounded
// staleness versus concurrent writes is acceptable.
func RefreshGauges(stats *model.Stats) {
	Metrics.TotalPredictions.Set(float64(stats.TotalPredictions))
	Metrics.Accuracy.Set(stats.Accuracy)
	Metrics.AverageRating.Set(stats.AverageRating)
	Metrics.RealPredictions.Set(float64(stats.RealCount))
	Metrics.FakePredictions.Set(float64(stats.FakeCount))
	Metrics.FeedbackRecords.Set(float64(stats.FeedbackCount))
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		endpoint := string([]byte(c.Path()))
		method := string([]byte(c.Method()))

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
