package routes

import (
	"github.com/Fatal777/ApplyX-sub001/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health          *handler.HealthHandler
	listings        *handler.ListingsHandler
	recommendations *handler.RecommendationsHandler
}

func NewRegistry(health *handler.HealthHandler, listings *handler.ListingsHandler, recommendations *handler.RecommendationsHandler) *Registry {
	return &Registry{health: health, listings: listings, recommendations: recommendations}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.health.HandleHealth)

	v1 := app.Group("/api").Group("/v1")

	v1.Get("/listings/:portal/:page", r.listings.HandleGetCached)
	v1.Post("/listings/refresh", r.listings.HandleRefresh)
	v1.Get("/ratelimit/:portal", r.listings.HandleCheckRateLimit)

	v1.Get("/recommendations/:resumeID", r.recommendations.HandleGet)
	v1.Post("/recommendations/:resumeID/compute", r.recommendations.HandleCompute)
}
