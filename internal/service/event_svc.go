package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// PredictionChannel is the Redis pub/sub channel carrying new predictions
// for live consumers (dashboards, alerting).
const PredictionChannel = "newscheck:predictions"

// PredictionEvent is the payload published after each inference.
type PredictionEvent struct {
	PredictionID   *int64    `json:"prediction_id"`
	Prediction     string    `json:"prediction"`
	Confidence     *float64  `json:"confidence"`
	LatencySeconds float64   `json:"latency_seconds"`
	Timestamp      time.Time `json:"timestamp"`
}

// EventService publishes prediction events to Redis. If redisURL is empty
// or the connection fails, publishing becomes a no-op.
type EventService struct {
	rdb *redis.Client
}

func NewEventService(redisURL string) *EventService {
	if redisURL == "" {
		log.Println("redis: no URL configured, event publishing disabled")
		return &EventService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, event publishing disabled: %v", redisURL, err)
		return &EventService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, event publishing disabled: %v", err)
		return &EventService{}
	}

	log.Println("redis: connected, event publishing enabled")
	return &EventService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (s *EventService) Client() *redis.Client {
	return s.rdb
}

// PublishPrediction sends a prediction event to subscribers. No-op when
// Redis is not configured.
func (s *EventService) PublishPrediction(ctx context.Context, evt PredictionEvent) error {
	if s.rdb == nil {
		return nil
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, PredictionChannel, data).Err()
}

// Close shuts down the Redis connection.
func (s *EventService) Close() error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
