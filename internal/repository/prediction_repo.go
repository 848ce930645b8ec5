package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newscheck/newscheck-go/internal/model"
)

// List limits: callers get 50 records unless they ask for more, and never
// more than 200 regardless of what they ask for.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type PredictionRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionRepo(pool *pgxpool.Pool) *PredictionRepo {
	return &PredictionRepo{pool: pool}
}

// Create inserts a new prediction record with server-assigned UTC timestamps
// and returns its identifier.
func (r *PredictionRepo) Create(ctx context.Context, title, text, label string, confidence float64, latencySeconds float64) (int64, error) {
	now := time.Now().UTC()

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO predictions (title, text, prediction, confidence, latency_seconds, ts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id`,
		title, text, label, confidence, latencySeconds, now).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AttachFeedback sets user_feedback and user_rating together on an existing
// record. Resubmission overwrites the previous values (last write wins).
// Returns model.ErrNotFound if no record has the given id.
func (r *PredictionRepo) AttachFeedback(ctx context.Context, id int64, feedback string, rating int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE predictions
		SET user_feedback = $2, user_rating = $3
		WHERE id = $1`,
		id, feedback, rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListRecent returns up to limit records ordered most recent first.
func (r *PredictionRepo) ListRecent(ctx context.Context, limit int) ([]model.Prediction, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, text, prediction, confidence, latency_seconds,
		       ts, user_feedback, user_rating, created_at
		FROM predictions
		ORDER BY ts DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]model.Prediction, 0, limit)
	for rows.Next() {
		var p model.Prediction
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Text, &p.Prediction, &p.Confidence, &p.LatencySeconds,
			&p.Timestamp, &p.UserFeedback, &p.UserRating, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return predictions, nil
}

// ComputeStats recomputes all aggregate statistics from the full record set.
// Nothing is cached: every call reflects the store at call time. The
// today_count cutoff is the start of the current UTC calendar day; the double
// AT TIME ZONE keeps the comparison in timestamptz so the session TimeZone
// cannot shift the boundary.
func (r *PredictionRepo) ComputeStats(ctx context.Context) (*model.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM predictions) AS total,
			(SELECT COUNT(*) FROM predictions WHERE user_feedback IS NOT NULL) AS feedback_count,
			(SELECT COUNT(*) FROM predictions WHERE user_feedback = 'correct') AS correct_count,
			(SELECT COALESCE(AVG(user_rating), 0) FROM predictions WHERE user_rating IS NOT NULL) AS average_rating,
			(SELECT COUNT(*) FROM predictions WHERE ts >= date_trunc('day', NOW() AT TIME ZONE 'utc') AT TIME ZONE 'utc') AS today_count,
			(SELECT COUNT(*) FROM predictions WHERE prediction = 'REAL') AS real_count,
			(SELECT COUNT(*) FROM predictions WHERE prediction = 'FAKE') AS fake_count`

	var stats model.Stats
	var correctCount int64
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalPredictions, &stats.FeedbackCount, &correctCount,
		&stats.AverageRating, &stats.TodayCount, &stats.RealCount, &stats.FakeCount,
	)
	if err != nil {
		return nil, err
	}

	if stats.FeedbackCount > 0 {
		stats.Accuracy = float64(correctCount) / float64(stats.FeedbackCount) * 100
	}

	return &stats, nil
}
