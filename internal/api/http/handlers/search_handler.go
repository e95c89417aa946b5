package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
)

// SearchHandler exposes catalog search endpoints.
type SearchHandler struct {
	catalog *service.CatalogService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(catalog *service.CatalogService) *SearchHandler {
	return &SearchHandler{catalog: catalog}
}

// All handles GET /api/search?q=.
func (h *SearchHandler) All(c *fiber.Ctx) error {
	q := c.Query("q")
	results, err := h.catalog.Search(c.UserContext(), q)
	if err != nil {
		return err
	}

	songs := dto.NewSongResponses(results.Songs)
	artists := dto.NewArtistResponses(results.Artists)
	albums := dto.NewAlbumResponses(results.Albums)

	return c.JSON(fiber.Map{
		"success": true,
		"query":   q,
		"results": fiber.Map{
			"songs":   songs,
			"artists": artists,
			"albums":  albums,
		},
		"count": fiber.Map{
			"songs":   len(songs),
			"artists": len(artists),
			"albums":  len(albums),
			"total":   len(songs) + len(artists) + len(albums),
		},
	})
}

// Songs handles GET /api/search/songs?q=.
func (h *SearchHandler) Songs(c *fiber.Ctx) error {
	q := c.Query("q")
	songs, err := h.catalog.SearchSongs(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"query":   q,
		"data":    dto.NewSongResponses(songs),
		"count":   len(songs),
	})
}

// Artists handles GET /api/search/artists?q=.
func (h *SearchHandler) Artists(c *fiber.Ctx) error {
	q := c.Query("q")
	artists, err := h.catalog.SearchArtists(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"query":   q,
		"data":    dto.NewArtistResponses(artists),
		"count":   len(artists),
	})
}

// Albums handles GET /api/search/albums?q=.
func (h *SearchHandler) Albums(c *fiber.Ctx) error {
	q := c.Query("q")
	albums, err := h.catalog.SearchAlbums(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"query":   q,
		"data":    dto.NewAlbumResponses(albums),
		"count":   len(albums),
	})
}
