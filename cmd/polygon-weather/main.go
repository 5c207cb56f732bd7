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

	httpapi "github.com/ogrishko/polygon-weather/internal/api/http"
	"github.com/ogrishko/polygon-weather/internal/archive"
	"github.com/ogrishko/polygon-weather/internal/config"
	"github.com/ogrishko/polygon-weather/internal/geocode"
	"github.com/ogrishko/polygon-weather/internal/region"
	"github.com/ogrishko/polygon-weather/internal/scheduler"
	"github.com/ogrishko/polygon-weather/internal/series"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound archive calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store for regions and their cached series.
	store := region.NewStore(cfg.CacheMaxAge)

	// Archive client with resilience (backoff + circuit breaker).
	archiveClient := archive.NewClient(httpClient, cfg.ArchiveBaseURL)

	// Reverse-geocoded region labels; disabled without an API key.
	labeler := geocode.New(cfg.GeocoderAPIKey)

	// Core service orchestrating regions, archive fetches and the
	// series pipeline.
	service := region.NewService(store, archiveClient, labeler, series.LogSink, cfg.CacheWindow)

	// Scheduler that periodically refreshes cached region series.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "polygon-weather",
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
				"error":   true,
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
			"service": "polygon-weather",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

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
