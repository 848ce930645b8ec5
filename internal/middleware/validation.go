package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MaxTitleLen = 512   // predictions.title
	MaxTextLen  = 50000 // predictions.text
	MinRating   = 1
	MaxRating   = 5
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateTitle checks the article title. An empty title is allowed.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if len(title) > MaxTitleLen {
		return "", "title must be at most 512 characters"
	}
	return title, ""
}

// ValidateText checks the article body text.
func ValidateText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "text is required"
	}
	if len(text) > MaxTextLen {
		return "", "text must be at most 50000 characters"
	}
	return text, ""
}

// ValidateFeedback normalizes and checks a user feedback value.
func ValidateFeedback(feedback string) (string, string) {
	feedback = strings.ToLower(strings.TrimSpace(feedback))
	if feedback == "" {
		return "", "user_feedback is required"
	}
	if feedback != "correct" && feedback != "incorrect" {
		return "", "user_feedback must be 'correct' or 'incorrect'"
	}
	return feedback, ""
}

// ValidateRating checks that a rating is within 1-5.
func ValidateRating(rating int) string {
	if rating < MinRating || rating > MaxRating {
		return "user_rating must be between 1 and 5"
	}
	return ""
}

// ValidateLimit parses the ?limit query parameter. An empty value means the
// caller takes the server default.
func ValidateLimit(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, "limit must be a positive integer"
	}
	return n, ""
}
