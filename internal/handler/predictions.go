package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/newscheck/newscheck-go/internal/middleware"
	"github.com/newscheck/newscheck-go/internal/service"
)

type PredictionsHandler struct {
	svc *service.PredictionService
}

func NewPredictionsHandler(svc *service.PredictionService) *PredictionsHandler {
	return &PredictionsHandler{svc: svc}
}

// List handles GET /api/predictions?limit=N
func (h *PredictionsHandler) List(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	predictions, err := h.svc.ListRecent(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch predictions")
	}

	return c.JSON(fiber.Map{
		"predictions": predictions,
		"count":       len(predictions),
	})
}
