package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/http/handlers"
	"github.com/spec-kit/music-stream-service/internal/auth"
)

// CatalogRouteConfig bundles dependencies for the catalog API.
type CatalogRouteConfig struct {
	Health  *handlers.HealthHandler
	Songs   *handlers.SongsHandler
	Artists *handlers.ArtistsHandler
	Albums  *handlers.AlbumsHandler
	Genres  *handlers.GenresHandler
	Search  *handlers.SearchHandler
	Stream  *handlers.StreamHandler
	Guard   *auth.Guard
}

// RegisterCatalogRoutes wires the catalog API.
func RegisterCatalogRoutes(app *fiber.App, cfg CatalogRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	songs := api.Group("/songs")
	songs.Get("/", cfg.Guard.Optional, cfg.Songs.List)
	songs.Get("/:songId", cfg.Guard.Optional, cfg.Songs.Get)
	songs.Post("/", cfg.Guard.Require, cfg.Songs.Create)
	songs.Put("/:songId", cfg.Guard.Require, cfg.Songs.Update)
	songs.Delete("/:songId", cfg.Guard.Require, cfg.Songs.Delete)

	artists := api.Group("/artists")
	artists.Get("/", cfg.Artists.List)
	artists.Get("/:artistId", cfg.Artists.Get)
	artists.Get("/:artistId/songs", cfg.Artists.Songs)
	artists.Get("/:artistId/albums", cfg.Artists.Albums)
	artists.Post("/", cfg.Guard.Require, cfg.Artists.Create)
	artists.Put("/:artistId", cfg.Guard.Require, cfg.Artists.Update)
	artists.Delete("/:artistId", cfg.Guard.Require, cfg.Artists.Delete)

	albums := api.Group("/albums")
	albums.Get("/", cfg.Albums.List)
	albums.Get("/:albumId", cfg.Albums.Get)
	albums.Get("/:albumId/songs", cfg.Albums.Songs)
	albums.Post("/", cfg.Guard.Require, cfg.Albums.Create)
	albums.Put("/:albumId", cfg.Guard.Require, cfg.Albums.Update)
	albums.Delete("/:albumId", cfg.Guard.Require, cfg.Albums.Delete)

	genres := api.Group("/genres")
	genres.Get("/", cfg.Genres.List)
	genres.Get("/:genreId", cfg.Genres.Get)
	genres.Get("/:genreId/songs", cfg.Genres.Songs)

	search := api.Group("/search")
	search.Get("/", cfg.Search.All)
	search.Get("/songs", cfg.Search.Songs)
	search.Get("/artists", cfg.Search.Artists)
	search.Get("/albums", cfg.Search.Albums)

	api.Get("/stream/songs/:songId/stream-url", cfg.Guard.Optional, cfg.Stream.StreamURL)
}

// UserRouteConfig bundles dependencies for the user API.
type UserRouteConfig struct {
	Health    *handlers.HealthHandler
	Users     *handlers.UsersHandler
	Playlists *handlers.PlaylistsHandler
	Guard     *auth.Guard
}

// RegisterUserRoutes wires the user API.
func RegisterUserRoutes(app *fiber.App, cfg UserRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)

	users.Get("/profile", cfg.Guard.Require, cfg.Users.Profile)
	users.Put("/profile", cfg.Guard.Require, cfg.Users.UpdateProfile)

	users.Post("/favorites", cfg.Guard.Require, cfg.Users.AddFavorite)
	users.Get("/favorites", cfg.Guard.Require, cfg.Users.Favorites)
	users.Delete("/favorites/:songId", cfg.Guard.Require, cfg.Users.RemoveFavorite)

	users.Post("/play", cfg.Guard.Require, cfg.Users.RecordPlay)
	users.Get("/history", cfg.Guard.Require, cfg.Users.History)
	users.Get("/stats", cfg.Guard.Require, cfg.Users.Stats)

	// Per-user paths are additionally pinned to the token subject.
	users.Get("/:userId/favorites", cfg.Guard.Require, cfg.Guard.RequireSameUser, cfg.Users.Favorites)
	users.Get("/:userId/history", cfg.Guard.Require, cfg.Guard.RequireSameUser, cfg.Users.History)
	users.Get("/:userId/stats", cfg.Guard.Require, cfg.Guard.RequireSameUser, cfg.Users.Stats)

	playlists := api.Group("/playlists", cfg.Guard.Require)
	playlists.Post("/", cfg.Playlists.Create)
	playlists.Get("/", cfg.Playlists.List)
	playlists.Delete("/:playlistId", cfg.Playlists.Delete)
	playlists.Get("/:playlistId/songs", cfg.Playlists.Songs)
	playlists.Post("/:playlistId/songs", cfg.Playlists.AddSong)
	playlists.Delete("/:playlistId/songs/:songId", cfg.Playlists.RemoveSong)
}

// AnalyticsRouteConfig bundles dependencies for the analytics API.
type AnalyticsRouteConfig struct {
	Health    *handlers.HealthHandler
	Analytics *handlers.AnalyticsHandler
	Guard     *auth.Guard
}

// RegisterAnalyticsRoutes wires the analytics API.
func RegisterAnalyticsRoutes(app *fiber.App, cfg AnalyticsRouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/analytics")
	api.Post("/plays", cfg.Guard.Optional, cfg.Analytics.TrackPlay)
	api.Get("/songs/:songId", cfg.Analytics.SongStats)
	api.Get("/trending", cfg.Analytics.Trending)
}
