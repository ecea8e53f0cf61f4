package handler

import (
	"errors"
	"strconv"

	"github.com/Fatal777/ApplyX-sub001/internal/delivery/http/middleware"
	"github.com/Fatal777/ApplyX-sub001/internal/pkg/response"
	"github.com/Fatal777/ApplyX-sub001/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationsHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationsHandler(uc usecase.RecommendationUsecase) *RecommendationsHandler {
	return &RecommendationsHandler{uc: uc}
}

func (h *RecommendationsHandler) HandleGet(c fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("resumeID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	ranked, found, err := h.uc.GetRecommendations(c.Context(), resumeID)
	if err != nil {
		return mapRecommendationError(err)
	}
	if !found {
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ranked)
}

func (h *RecommendationsHandler) HandleCompute(c fiber.Ctx) error {
	resumeID, err := uuid.Parse(c.Params("resumeID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	topN := 0
	if raw := c.Query("top_n"); raw != "" {
		topN, err = strconv.Atoi(raw)
		if err != nil || topN < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
		}
	}

	ranked, err := h.uc.ComputeAndCacheRecommendations(c.Context(), resumeID, topN)
	if err != nil {
		return mapRecommendationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ranked)
}

func mapRecommendationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "resume not found", nil, err)
	case errors.Is(err, usecase.ErrNoListings):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
