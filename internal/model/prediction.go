package model

import "time"

// Prediction labels as stored and served.
const (
	LabelReal = "REAL"
	LabelFake = "FAKE"
)

// Feedback values accepted from users.
const (
	FeedbackCorrect   = "correct"
	FeedbackIncorrect = "incorrect"
)

// Prediction represents one persisted inference record.
type Prediction struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Text           string    `json:"text"`
	Prediction     string    `json:"prediction"`
	Confidence     float64   `json:"confidence"`
	LatencySeconds *float64  `json:"latency_seconds,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	UserFeedback   *string   `json:"user_feedback,omitempty"`
	UserRating     *int      `json:"user_rating,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PredictRequest is the API request body for POST /api/predict.
type PredictRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// PredictResponse is the API response after running inference.
// PredictionID is null when the result could not be durably recorded.
type PredictResponse struct {
	PredictionID   *int64   `json:"prediction_id"`
	Prediction     string   `json:"prediction"`
	Confidence     *float64 `json:"confidence"`
	LatencySeconds float64  `json:"latency_seconds"`
}

// FeedbackRequest is the API request body for POST /api/feedback.
type FeedbackRequest struct {
	PredictionID int64  `json:"prediction_id"`
	UserFeedback string `json:"user_feedback"`
	UserRating   int    `json:"user_rating"`
}

// FeedbackResponse confirms a stored feedback submission.
type FeedbackResponse struct {
	Success      bool   `json:"success"`
	PredictionID int64  `json:"prediction_id"`
	UserFeedback string `json:"user_feedback"`
	UserRating   int    `json:"user_rating"`
}

// Stats holds aggregate statistics derived from all prediction records.
type Stats struct {
	TotalPredictions int64   `json:"total_predictions"`
	Accuracy         float64 `json:"accuracy"`
	AverageRating    float64 `json:"average_rating"`
	TodayCount       int64   `json:"today_count"`
	RealCount        int64   `json:"real_count"`
	FakeCount        int64   `json:"fake_count"`
	FeedbackCount    int64   `json:"feedback_count"`
}
