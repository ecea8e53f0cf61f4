package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Engine   EngineConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// EngineConfig tunes the cache/match engine. Redis connection settings stay
// env-driven inside the cache package itself (REDIS_HOST, REDIS_PORT,
// REDIS_PASSWORD).
type EngineConfig struct {
	ListingTTLSeconds   int
	RecsTTLSeconds      int
	RateLimitPerMinute  int
	FetchTimeoutSeconds int
	ScraperBaseURL      string
	RefreshCronHours    int
	Portals             []string
	PagesPerPortal      int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return def
		}
		return n
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),
	}

	cfg.Engine = EngineConfig{
		ListingTTLSeconds:   optInt("LISTING_TTL_SECONDS", 4*60*60),
		RecsTTLSeconds:      optInt("RECS_TTL_SECONDS", 24*60*60),
		RateLimitPerMinute:  optInt("RATE_LIMIT_PER_MINUTE", 60),
		FetchTimeoutSeconds: optInt("FETCH_TIMEOUT_SECONDS", 30),
		ScraperBaseURL:      opt("SCRAPER_BASE_URL"),
		RefreshCronHours:    optInt("REFRESH_CRON_HOURS", 4),
		Portals:             splitList(opt("PORTALS"), "indeed,linkedin,glassdoor"),
		PagesPerPortal:      optInt("PAGES_PER_PORTAL", 3),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitList(raw, def string) []string {
	if raw == "" {
		raw = def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
