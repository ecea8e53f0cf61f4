package handler

import (
	"context"

	"github.com/Fatal777/ApplyX-sub001/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cache pinger
}

func NewHealthHandler(cache pinger) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// HandleHealth reports liveness. A down cache degrades the engine to
// pass-through but does not make the process unhealthy.
func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	cacheStatus := "ok"
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		cacheStatus = "unavailable"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"cache": cacheStatus})
}
