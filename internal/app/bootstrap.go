package app

import (
	"fmt"
	"strings"

	"github.com/Fatal777/ApplyX-sub001/internal/config"
	"github.com/Fatal777/ApplyX-sub001/internal/delivery/http/handler"
	"github.com/Fatal777/ApplyX-sub001/internal/delivery/http/middleware"
	"github.com/Fatal777/ApplyX-sub001/internal/delivery/http/routes"
	"github.com/Fatal777/ApplyX-sub001/internal/scheduler"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Scheduler *scheduler.Scheduler
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(accessMw.Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Cache),
		handler.NewListingsHandler(c.Listings),
		handler.NewRecommendationsHandler(c.Recommendations),
	)
	registry.Register(f)

	return &App{Fiber: f, Scheduler: c.Scheduler}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
