package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/music-stream-service/internal/api/http"
	"github.com/spec-kit/music-stream-service/internal/api/http/handlers"
	"github.com/spec-kit/music-stream-service/internal/auth"
	"github.com/spec-kit/music-stream-service/internal/config"
	"github.com/spec-kit/music-stream-service/internal/observability"
	"github.com/spec-kit/music-stream-service/internal/persistence"
	"github.com/spec-kit/music-stream-service/internal/service"
)

func main() {
	cfg, err := config.Load("analytics-service")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	analyticsService := service.NewAnalyticsService(redis.Client, nil, logger, cfg.Analytics)

	guard := auth.NewGuard(auth.NewVerifier(cfg.Auth), logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterAnalyticsRoutes(app, httptransport.AnalyticsRouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, nil, redis),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Guard:     guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
