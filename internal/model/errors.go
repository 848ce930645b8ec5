package model

import "errors"

// Sentinel errors distinguishing client-side failures from persistence
// failures, so handlers can map each to the right status code.
var (
	// ErrNotFound means the referenced prediction record does not exist.
	ErrNotFound = errors.New("prediction not found")

	// ErrInvalidFeedback means user_feedback is not "correct" or "incorrect".
	ErrInvalidFeedback = errors.New("user_feedback must be 'correct' or 'incorrect'")

	// ErrInvalidRating means user_rating is outside 1-5.
	ErrInvalidRating = errors.New("user_rating must be between 1 and 5")
)
