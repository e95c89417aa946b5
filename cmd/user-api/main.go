package main

import (
	"context"
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
	"github.com/spec-kit/music-stream-service/internal/events"
	"github.com/spec-kit/music-stream-service/internal/observability"
	"github.com/spec-kit/music-stream-service/internal/persistence"
	"github.com/spec-kit/music-stream-service/internal/repository"
	"github.com/spec-kit/music-stream-service/internal/service"
	"github.com/spec-kit/music-stream-service/internal/worker"
)

func main() {
	cfg, err := config.Load("user-service")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	playlistRepo := repository.NewPlaylistRepository(pool)
	historyRepo := repository.NewPlayHistoryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:        userRepo,
		FavoriteRepo:    favoriteRepo,
		PlaylistRepo:    playlistRepo,
		PlayHistoryRepo: historyRepo,
		Dispatcher:      dispatcher,
	})

	// Recorded plays feed the shared analytics counters in-process.
	analyticsService := service.NewAnalyticsService(redis.Client, dispatcher, logger, cfg.Analytics)
	worker.StartAnalyticsWorker(analyticsService)

	guard := auth.NewGuard(auth.NewVerifier(cfg.Auth), logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterUserRoutes(app, httptransport.UserRouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:     handlers.NewUsersHandler(userService),
		Playlists: handlers.NewPlaylistsHandler(userService),
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
