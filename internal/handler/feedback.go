package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/newscheck/newscheck-go/internal/middleware"
	"github.com/newscheck/newscheck-go/internal/model"
	"github.com/newscheck/newscheck-go/internal/service"
)

type FeedbackHandler struct {
	svc *service.PredictionService
}

func NewFeedbackHandler(svc *service.PredictionService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(c fiber.Ctx) error {
	var req model.FeedbackRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.PredictionID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "prediction_id is required")
	}

	feedback, errMsg := middleware.ValidateFeedback(req.UserFeedback)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserFeedback = feedback

	if errMsg := middleware.ValidateRating(req.UserRating); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.SubmitFeedback(c.Context(), req); err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Prediction not found")
		case errors.Is(err, model.ErrInvalidFeedback), errors.Is(err, model.ErrInvalidRating):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record feedback")
		}
	}

	Metrics.FeedbackTotal.WithLabelValues(req.UserFeedback).Inc()

	// Derived gauges are recomputed from the store after every feedback
	// submission; a failed refresh never fails the request.
	if stats, err := h.svc.GetStats(c.Context()); err == nil {
		RefreshGauges(stats)
	}

	return c.JSON(model.FeedbackResponse{
		Success:      true,
		PredictionID: req.PredictionID,
		UserFeedback: req.UserFeedback,
		UserRating:   req.UserRating,
	})
}
