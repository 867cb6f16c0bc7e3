package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skyfare/skyfare/internal/airports"
	"github.com/skyfare/skyfare/internal/amadeus"
	"github.com/skyfare/skyfare/internal/cache"
	"github.com/skyfare/skyfare/internal/config"
	"github.com/skyfare/skyfare/internal/handler"
	"github.com/skyfare/skyfare/internal/prefs"
	"github.com/skyfare/skyfare/internal/ratelimit"
	"github.com/skyfare/skyfare/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiterWithDefaults()
	rateLimiter.SetEndpointLimit("token", 2, 4)
	rateLimiter.SetEndpointLimit("/v2/shopping/flight-offers", 5, 10)
	rateLimiter.SetEndpointLimit("/v1/reference-data/locations", 10, 20)
	rateLimiter.SetEndpointLimit("/v1/analytics/itinerary-price-metrics", 5, 10)

	client := amadeus.NewClient(amadeus.Config{
		BaseURL:      cfg.Amadeus.BaseURL,
		ClientID:     cfg.Amadeus.ClientID,
		ClientSecret: cfg.Amadeus.ClientSecret,
		Timeout:      cfg.Amadeus.Timeout,
		MaxRetries:   cfg.Amadeus.MaxRetries,
		Limiter:      rateLimiter,
	})
	if cfg.Amadeus.ClientID == "" || cfg.Amadeus.ClientSecret == "" {
		logger.Warn("amadeus credentials not configured, searches will serve fallback data")
	}

	orch := search.NewOrchestrator(client, search.WithLogger(logger))
	refresher := search.NewRefresher(orch, cfg.Refresh.Interval, nil, logger)
	defer refresher.Stop()

	var flightCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.Cache.RedisHost,
			Port: cfg.Cache.RedisPort,
			TTL:  cfg.Cache.TTL,
		})
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		flightCache = redisCache
		logger.Info("redis cache enabled",
			"host", cfg.Cache.RedisHost, "port", cfg.Cache.RedisPort, "ttl", cfg.Cache.TTL)
	} else {
		flightCache = cache.NewNoOpCache()
		logger.Info("cache disabled")
	}
	defer flightCache.Close()

	suggester := airports.NewSuggester(&airports.AmadeusSource{Client: client},
		airports.DefaultDebounce, logger)
	prefStore := prefs.NewStore()

	searchHandler := handler.NewSearchHandler(orch, flightCache, suggester, prefStore)

	api := e.Group("/api/v1")
	api.POST("/flights/search", searchHandler.Search)
	api.POST("/flights/filter", searchHandler.Filter)
	api.GET("/airports/suggest", searchHandler.Suggest)
	api.GET("/preferences/language", searchHandler.Language)
	api.PUT("/preferences/language", searchHandler.SetLanguage)
	e.GET("/health", handler.HealthHandler)

	logger.Info("starting flight search server", "port", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
