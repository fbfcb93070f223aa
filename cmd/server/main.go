package main

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/adapter/kafka"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/config"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/delivery/http"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/observability"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/repository/postgres"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/service"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg)
	if envErr != nil {
		log.Debug("no .env file found, using system environment")
	}
	if !cfg.Configured() {
		log.Warn("OPENWEATHER_API_KEY is not set; weather lookups will fail")
	}

	metrics := observability.NewMetrics()

	// Dependency Injection: Repositories
	var repo service.LookupRepository = postgres.NewMemoryRepository()
	if cfg.DatabaseURL != "" {
		pool, err := connectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Warn("could not connect to database, keeping history in memory", "error", err)
		} else {
			defer pool.Close()
			repo = postgres.NewPostgresRepository(pool)
			log.Info("connected to PostgreSQL")
		}
	}

	// Dependency Injection: Services
	fetcher := service.NewWeatherFetcher(cfg.OpenWeatherBaseURL, cfg, &nethttp.Client{Timeout: cfg.HTTPTimeout})

	var opts []service.Option
	if cfg.KafkaEnabled() {
		publisher := kafka.NewPublisher(cfg)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("failed to close kafka publisher", "error", err)
			}
		}()
		opts = append(opts, service.WithPublisher(publisher))
		log.Info("publishing lookups to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	weatherSvc := service.NewWeatherService(fetcher, repo, metrics, log, opts...)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:               "Weather API v1.0",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          http.ErrorHandler,
		DisableStartupMessage: cfg.Env == "production",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(weatherSvc, cfg.HistoryLimit))

	// Graceful shutdown
	go func() {
		log.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	weatherSvc.WaitBackground()
	log.Info("server exited gracefully")
}

func connectPostgres(url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := postgres.NewPostgresRepository(pool).EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
