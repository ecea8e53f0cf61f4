package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/delivery/http/middleware"
	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
	"github.com/Fatal777/ApplyX-sub001/internal/pkg/response"
	"github.com/Fatal777/ApplyX-sub001/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ListingsHandler struct {
	uc usecase.ListingUsecase
}

func NewListingsHandler(uc usecase.ListingUsecase) *ListingsHandler {
	return &ListingsHandler{uc: uc}
}

// HandleGetCached serves the fresh cached entry for one (portal, page).
// A miss is 404: the caller is expected to trigger a refresh, a miss is
// never an empty result.
func (h *ListingsHandler) HandleGetCached(c fiber.Ctx) error {
	portal, page, err := parsePortalPage(c)
	if err != nil {
		return err
	}

	items, found, err := h.uc.GetCachedListings(c.Context(), portal, page)
	if err != nil {
		return mapListingError(err)
	}
	if !found {
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

type refreshRequest struct {
	Portal     string `json:"portal"`
	Page       int    `json:"page"`
	TTLSeconds int    `json:"ttl_seconds"`
}

func (h *ListingsHandler) HandleRefresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	portal, ok := listing.ParsePortal(req.Portal)
	if !ok || req.Page <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, nil)
	}

	items, err := h.uc.RefreshListings(c.Context(), portal, req.Page, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		return mapListingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ListingsHandler) HandleCheckRateLimit(c fiber.Ctx) error {
	portal, ok := listing.ParsePortal(c.Params("portal"))
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, nil)
	}
	allowed, err := h.uc.CheckRateLimit(c.Context(), portal)
	if err != nil {
		return mapListingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"portal": portal, "allowed": allowed})
}

func parsePortalPage(c fiber.Ctx) (listing.Portal, int, error) {
	portal, ok := listing.ParsePortal(c.Params("portal"))
	if !ok {
		return "", 0, middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, nil)
	}
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil || page <= 0 {
		return "", 0, middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	return portal, page, nil
}

func mapListingError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrRateLimitExceeded):
		return middleware.NewAppError(fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil, err)
	case errors.Is(err, usecase.ErrFetchTimeout):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, response.MessageGatewayTimeout, nil, err)
	case errors.Is(err, usecase.ErrUpstreamFetch):
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	case errors.Is(err, usecase.ErrNoListings):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
