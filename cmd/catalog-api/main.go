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
	"github.com/spec-kit/music-stream-service/internal/observability"
	"github.com/spec-kit/music-stream-service/internal/persistence"
	"github.com/spec-kit/music-stream-service/internal/repository"
	"github.com/spec-kit/music-stream-service/internal/service"
	"github.com/spec-kit/music-stream-service/internal/storage"
)

func main() {
	cfg, err := config.Load("catalog-service")
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

	store, err := storage.NewGCSStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object store", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	pool := pg.PoolHandle()
	songRepo := repository.NewSongRepository(pool)
	artistRepo := repository.NewArtistRepository(pool)
	albumRepo := repository.NewAlbumRepository(pool)
	genreRepo := repository.NewGenreRepository(pool)

	catalogService := service.NewCatalogService(service.CatalogDependencies{
		SongRepo:   songRepo,
		ArtistRepo: artistRepo,
		AlbumRepo:  albumRepo,
		GenreRepo:  genreRepo,
	})
	streamService := service.NewStreamService(songRepo, store, cfg.Storage.SignedURLTTL(), logger)

	guard := auth.NewGuard(auth.NewVerifier(cfg.Auth), logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterCatalogRoutes(app, httptransport.CatalogRouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, nil),
		Songs:   handlers.NewSongsHandler(catalogService),
		Artists: handlers.NewArtistsHandler(catalogService),
		Albums:  handlers.NewAlbumsHandler(catalogService),
		Genres:  handlers.NewGenresHandler(catalogService),
		Search:  handlers.NewSearchHandler(catalogService),
		Stream:  handlers.NewStreamHandler(streamService),
		Guard:   guard,
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
