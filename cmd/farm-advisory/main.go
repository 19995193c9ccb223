package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/farmii/farm-advisory/internal/advisory"
	httpapi "github.com/farmii/farm-advisory/internal/api/http"
	"github.com/farmii/farm-advisory/internal/chat"
	"github.com/farmii/farm-advisory/internal/config"
	"github.com/farmii/farm-advisory/internal/geo"
	"github.com/farmii/farm-advisory/internal/scheduler"
	"github.com/farmii/farm-advisory/internal/store"
	"github.com/farmii/farm-advisory/internal/weather"
	"github.com/farmii/farm-advisory/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory report store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Location resolver: Google when an API key is configured, otherwise
	// the keyless Open-Meteo geocoding API. Both sit behind an LRU cache.
	var resolver geo.Resolver
	if cfg.GeocoderAPIKey != "" {
		resolver = geo.NewGoogleResolver(cfg.GeocoderAPIKey)
	} else {
		resolver = geo.NewOpenMeteoResolver(httpClient)
	}
	resolver = geo.NewCachedResolver(resolver, cfg.GeocodeCacheSize)

	// Forecast source with resilience (backoff + circuit breaker).
	provider := providers.NewOpenMeteoProvider(httpClient)

	// Advisory engine with configured thresholds.
	engine := advisory.NewEngine(cfg.Thresholds)

	// Core service orchestrating resolver, provider, engine, and store.
	service := weather.NewService(memStore, resolver, provider, engine)

	// Scheduler that periodically refreshes tracked locations.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "farm-advisory",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "farm-advisory",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, chat.NewBot())

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
