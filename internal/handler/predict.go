package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/newscheck/newscheck-go/internal/middleware"
	"github.com/newscheck/newscheck-go/internal/model"
	"github.com/newscheck/newscheck-go/internal/service"
)

type PredictHandler struct {
	svc *service.PredictionService
}

func NewPredictHandler(svc *service.PredictionService) *PredictHandler {
	return &PredictHandler{svc: svc}
}

// Predict handles POST /api/predict
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	var req model.PredictRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(req.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Title = title

	text, errMsg := middleware.ValidateText(req.Text)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Text = text

	resp := h.svc.Predict(c.Context(), req)

	Metrics.PredictionsTotal.WithLabelValues(resp.Prediction).Inc()
	Metrics.InferenceLatency.Observe(resp.LatencySeconds)
	if resp.PredictionID == nil {
		Metrics.PersistenceFailures.Inc()
	}

	return c.JSON(resp)
}
