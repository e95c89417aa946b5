package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
)

// GenresHandler exposes genre endpoints.
type GenresHandler struct {
	catalog *service.CatalogService
}

// NewGenresHandler constructs handler.
func NewGenresHandler(catalog *service.CatalogService) *GenresHandler {
	return &GenresHandler{catalog: catalog}
}

// List handles GET /api/genres.
func (h *GenresHandler) List(c *fiber.Ctx) error {
	genres, err := h.catalog.ListGenres(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewGenreResponses(genres),
		"count":   len(genres),
	})
}

// Get handles GET /api/genres/:genreId.
func (h *GenresHandler) Get(c *fiber.Ctx) error {
	genre, err := h.catalog.GetGenre(c.UserContext(), c.Params("genreId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.GenreResponse{
			ID:          genre.ID,
			Name:        genre.Name,
			Description: genre.Description,
		},
	})
}

// Songs handles GET /api/genres/:genreId/songs.
func (h *GenresHandler) Songs(c *fiber.Ctx) error {
	songs, err := h.catalog.GenreSongs(c.UserContext(), c.Params("genreId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponses(songs),
		"count":   len(songs),
	})
}
