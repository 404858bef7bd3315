package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financial-tracking/internal/config"
	"financial-tracking/internal/database"
	"financial-tracking/internal/handlers"
	"financial-tracking/internal/middleware"
	"financial-tracking/internal/repositories"
	"financial-tracking/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Server.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := db.CreateIndexes(); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	accountRepo := repositories.NewAccountRepository(db.DB)
	operationRepo := repositories.NewOperationRepository(db.DB)
	customerRepo := repositories.NewCustomerRepository(db.DB)

	metrics := services.NewPrometheusMetrics()

	// rand.Rand is not safe for concurrent use and each service serializes
	// access to its own instance only, so the generators must not share one.
	ribRNG := rand.New(rand.NewSource(time.Now().UnixNano()))
	operationRNG := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	accountService := services.NewAccountService(accountRepo, customerRepo, metrics, logger, ribRNG, cfg.Engine.RIBMaxAttempts)
	transactionService := services.NewTransactionService(accountRepo, operationRepo, metrics, logger, operationRNG, cfg.Engine.OperationNumberMaxAttempts)
	customerService := services.NewCustomerService(customerRepo, accountRepo, operationRepo, metrics, logger)

	accountHandler := handlers.NewAccountHandler(accountService, transactionService, customerService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.RateLimiterWithConfig(cfg.Server.RateLimitRPS, cfg.Server.RateBurst))
	e.Use(echomw.CORS())

	handlers.RegisterRoutes(e, accountHandler, customerHandler, healthHandler)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
