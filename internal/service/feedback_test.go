package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/newscheck/newscheck-go/internal/model"
)

// applyFeedback is a pure-logic mirror of PredictionRepo.AttachFeedback for
// unit testing without a database: both feedback fields are set together on
// the matching record, overwriting any previous values.
func applyFeedback(records []record, id int64, feedback string, rating int) error {
	for i := range records {
		if records[i].ID == id {
			records[i].UserFeedback = &feedback
			records[i].UserRating = &rating
			return nil
		}
	}
	return model.ErrNotFound
}

func TestFeedback_AttachSetsBothFields(t *testing.T) {
	now := time.Now().UTC()
	records := []record{
		{ID: 1, Prediction: model.LabelReal, Timestamp: now},
		{ID: 2, Prediction: model.LabelFake, Timestamp: now},
	}

	if err := applyFeedback(records, 2, model.FeedbackCorrect, 4); err != nil {
		t.Fatalf("applyFeedback returned %v, want nil", err)
	}

	if records[1].UserFeedback == nil || *records[1].UserFeedback != model.FeedbackCorrect {
		t.Errorf("record 2 feedback = %v, want %q", records[1].UserFeedback, model.FeedbackCorrect)
	}
	if records[1].UserRating == nil || *records[1].UserRating != 4 {
		t.Errorf("record 2 rating = %v, want 4", records[1].UserRating)
	}
	if records[0].UserFeedback != nil || records[0].UserRating != nil {
		t.Errorf("record 1 was modified by feedback for record 2")
	}
}

func TestFeedback_ResubmissionLastWriteWins(t *testing.T) {
	now := time.Now().UTC()
	records := []record{
		{ID: 7, Prediction: model.LabelFake, Timestamp: now},
	}

	if err := applyFeedback(records, 7, model.FeedbackCorrect, 5); err != nil {
		t.Fatalf("first submission returned %v, want nil", err)
	}
	if err := applyFeedback(records, 7, model.FeedbackIncorrect, 1); err != nil {
		t.Fatalf("resubmission returned %v, want nil", err)
	}

	if *records[0].UserFeedback != model.FeedbackIncorrect {
		t.Errorf("feedback = %q, want %q after resubmission", *records[0].UserFeedback, model.FeedbackIncorrect)
	}
	if *records[0].UserRating != 1 {
		t.Errorf("rating = %d, want 1 after resubmission", *records[0].UserRating)
	}

	// The resubmission flips the derived accuracy to 0.
	stats := computeStatsFromRecords(records, now)
	if stats.Accuracy != 0 {
		t.Errorf("accuracy = %.2f, want 0.00 after feedback overwritten to incorrect", stats.Accuracy)
	}
	if stats.FeedbackCount != 1 {
		t.Errorf("feedback count = %d, want 1 (resubmission does not add a record)", stats.FeedbackCount)
	}
}

func TestFeedback_UnknownIDLeavesRecordsUnchanged(t *testing.T) {
	now := time.Now().UTC()
	records := []record{
		{ID: 1, Prediction: model.LabelReal, Timestamp: now, UserFeedback: strPtr("correct"), UserRating: intPtr(3)},
		{ID: 2, Prediction: model.LabelFake, Timestamp: now},
	}
	before := make([]record, len(records))
	copy(before, records)

	err := applyFeedback(records, 999, model.FeedbackCorrect, 5)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("applyFeedback(unknown id) returned %v, want ErrNotFound", err)
	}
	if !reflect.DeepEqual(records, before) {
		t.Errorf("records changed on unknown id: got %+v, want %+v", records, before)
	}
}

func TestSubmitFeedback_InvalidFeedbackRejectedBeforeStore(t *testing.T) {
	// Nil dependencies: validation must reject before the store is touched.
	svc := NewPredictionService(nil, nil, nil, nil)

	err := svc.SubmitFeedback(context.Background(), model.FeedbackRequest{
		PredictionID: 1,
		UserFeedback: "maybe",
		UserRating:   3,
	})
	if !errors.Is(err, model.ErrInvalidFeedback) {
		t.Errorf("SubmitFeedback returned %v, want ErrInvalidFeedback", err)
	}
}

func TestSubmitFeedback_InvalidRatingRejectedBeforeStore(t *testing.T) {
	svc := NewPredictionService(nil, nil, nil, nil)

	for _, rating := range []int{0, -1, 6, 100} {
		err := svc.SubmitFeedback(context.Background(), model.FeedbackRequest{
			PredictionID: 1,
			UserFeedback: model.FeedbackCorrect,
			UserRating:   rating,
		})
		if !errors.Is(err, model.ErrInvalidRating) {
			t.Errorf("SubmitFeedback(rating=%d) returned %v, want ErrInvalidRating", rating, err)
		}
	}
}
