package service

import (
	"context"
	"log"
	"time"

	"github.com/newscheck/newscheck-go/internal/classifier"
	"github.com/newscheck/newscheck-go/internal/model"
	"github.com/newscheck/newscheck-go/internal/repository"
)

type PredictionService struct {
	repo    *repository.PredictionRepo
	clf     *classifier.Classifier
	events  *EventService
	tracker *TrackingService
}

func NewPredictionService(repo *repository.PredictionRepo, clf *classifier.Classifier, events *EventService, tracker *TrackingService) *PredictionService {
	return &PredictionService{repo: repo, clf: clf, events: events, tracker: tracker}
}

// Predict runs inference on the given article and records the result.
// Inference is the core of the feature: a persistence failure is logged and
// reported as a null prediction_id, but the computed result still reaches
// the caller.
func (s *PredictionService) Predict(ctx context.Context, req model.PredictRequest) *model.PredictResponse {
	// Latency covers the classifier invocation only, not persistence or
	// metrics updates.
	start := time.Now()
	label, confidence := s.clf.Predict(req.Title, req.Text)
	latency := Round3(time.Since(start).Seconds())

	// A model without probability estimates records confidence as 0.0;
	// the API response still reports null.
	storedConfidence := 0.0
	if confidence != nil {
		storedConfidence = *confidence
	}

	var predictionID *int64
	id, err := s.repo.Create(ctx, req.Title, req.Text, label, storedConfidence, latency)
	if err != nil {
		log.Printf("prediction persistence failed: %v", err)
	} else {
		predictionID = &id
	}

	if s.events != nil {
		if err := s.events.PublishPrediction(ctx, PredictionEvent{
			PredictionID:   predictionID,
			Prediction:     label,
			Confidence:     confidence,
			LatencySeconds: latency,
			Timestamp:      time.Now().UTC(),
		}); err != nil {
			log.Printf("prediction event publish failed: %v", err)
		}
	}

	if s.tracker != nil {
		if err := s.tracker.LogInference(ctx, InferenceRun{
			TitleLength:    len(req.Title),
			TextLength:     len(req.Text),
			LatencySeconds: latency,
			Confidence:     confidence,
		}); err != nil {
			log.Printf("tracking: inference log failed: %v", err)
		}
	}

	return &model.PredictResponse{
		PredictionID:   predictionID,
		Prediction:     label,
		Confidence:     confidence,
		LatencySeconds: latency,
	}
}

// SubmitFeedback validates and attaches user feedback to a prior prediction.
// Returns model.ErrInvalidFeedback / model.ErrInvalidRating for domain
// violations and model.ErrNotFound for an unknown id. Resubmission is
// allowed: the latest values win.
func (s *PredictionService) SubmitFeedback(ctx context.Context, req model.FeedbackRequest) error {
	if req.UserFeedback != model.FeedbackCorrect && req.UserFeedback != model.FeedbackIncorrect {
		return model.ErrInvalidFeedback
	}
	if req.UserRating < 1 || req.UserRating > 5 {
		return model.ErrInvalidRating
	}

	return s.repo.AttachFeedback(ctx, req.PredictionID, req.UserFeedback, req.UserRating)
}

// ListRecent returns the most recent prediction records.
func (s *PredictionService) ListRecent(ctx context.Context, limit int) ([]model.Prediction, error) {
	return s.repo.ListRecent(ctx, limit)
}

// GetStats recomputes aggregate statistics and rounds the derived
// percentages to one decimal place for the API.
func (s *PredictionService) GetStats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.repo.ComputeStats(ctx)
	if err != nil {
		return nil, err
	}

	stats.Accuracy = Round1(stats.Accuracy)
	stats.AverageRating = Round1(stats.AverageRating)
	return stats, nil
}
