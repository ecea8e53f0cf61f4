package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/config"
	"github.com/Fatal777/ApplyX-sub001/internal/database"
	dbpostgres "github.com/Fatal777/ApplyX-sub001/internal/database/postgres"
	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
	"github.com/Fatal777/ApplyX-sub001/internal/infrastructure/cache"
	"github.com/Fatal777/ApplyX-sub001/internal/infrastructure/scraper"
	"github.com/Fatal777/ApplyX-sub001/internal/repository"
	"github.com/Fatal777/ApplyX-sub001/internal/scheduler"
	"github.com/Fatal777/ApplyX-sub001/internal/usecase"
)

// Container owns the engine's long-lived state: the cache client, the
// database pool, and the usecases threaded through delivery and the
// scheduler. Created once at process start, torn down at shutdown.
type Container struct {
	Config config.Config
	Logger *log.Logger
	Cache  *cache.Redis
	DB     database.DB

	Listings        *usecase.Listings
	Recommendations *usecase.Recommendations
	Scheduler       *scheduler.Scheduler
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	redisCache := cache.NewRedis(logger)

	var db database.DB
	if cfg.Database.DBHost != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		db = pool
	}

	portals := make([]listing.Portal, 0, len(cfg.Engine.Portals))
	for _, raw := range cfg.Engine.Portals {
		p, ok := listing.ParsePortal(raw)
		if !ok {
			logger.Printf("[App] Unknown portal in config, skipping: %q", raw)
			continue
		}
		portals = append(portals, p)
	}

	listingTTL := time.Duration(cfg.Engine.ListingTTLSeconds) * time.Second
	recsTTL := time.Duration(cfg.Engine.RecsTTLSeconds) * time.Second
	fetchTimeout := time.Duration(cfg.Engine.FetchTimeoutSeconds) * time.Second

	listingStore := usecase.NewListingCache(redisCache, logger, listingTTL)
	recsStore := usecase.NewRecommendationCache(redisCache, logger, recsTTL)
	limiter := usecase.NewRateLimiter(redisCache, int64(cfg.Engine.RateLimitPerMinute), logger)
	scraperClient := scraper.NewClient(cfg.Engine.ScraperBaseURL, fetchTimeout, logger)

	listings := usecase.NewListingUsecase(redisCache, listingStore, limiter, scraperClient, logger, fetchTimeout)

	var resumes repository.ResumeRepository
	if db != nil {
		resumes = repository.NewPostgresResumeRepository(db)
	}
	recommendations := usecase.NewRecommendationUsecase(resumes, listings, recsStore, portals, cfg.Engine.PagesPerPortal, logger)

	sched := scheduler.New(listings, portals, cfg.Engine.PagesPerPortal, cfg.Engine.RefreshCronHours, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Cache:           redisCache,
		DB:              db,
		Listings:        listings,
		Recommendations: recommendations,
		Scheduler:       sched,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
