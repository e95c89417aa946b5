package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// ArtistsHandler exposes artist endpoints.
type ArtistsHandler struct {
	catalog *service.CatalogService
}

// NewArtistsHandler constructs handler.
func NewArtistsHandler(catalog *service.CatalogService) *ArtistsHandler {
	return &ArtistsHandler{catalog: catalog}
}

// List handles GET /api/artists.
func (h *ArtistsHandler) List(c *fiber.Ctx) error {
	artists, err := h.catalog.ListArtists(c.UserContext(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewArtistResponses(artists),
		"count":   len(artists),
	})
}

// Get handles GET /api/artists/:artistId.
func (h *ArtistsHandler) Get(c *fiber.Ctx) error {
	artist, err := h.catalog.GetArtist(c.UserContext(), c.Params("artistId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewArtistResponse(artist),
	})
}

// Songs handles GET /api/artists/:artistId/songs.
func (h *ArtistsHandler) Songs(c *fiber.Ctx) error {
	songs, err := h.catalog.ArtistSongs(c.UserContext(), c.Params("artistId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponses(songs),
		"count":   len(songs),
	})
}

// Albums handles GET /api/artists/:artistId/albums.
func (h *ArtistsHandler) Albums(c *fiber.Ctx) error {
	albums, err := h.catalog.ArtistAlbums(c.UserContext(), c.Params("artistId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewAlbumResponses(albums),
		"count":   len(albums),
	})
}

// Create handles POST /api/artists.
func (h *ArtistsHandler) Create(c *fiber.Ctx) error {
	var req dto.ArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	artist := req.ToModel()
	if err := h.catalog.CreateArtist(c.UserContext(), artist); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewArtistResponse(artist),
	})
}

// Update handles PUT /api/artists/:artistId.
func (h *ArtistsHandler) Update(c *fiber.Ctx) error {
	var req dto.ArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	artist := req.ToModel()
	artist.ID = c.Params("artistId")
	if err := h.catalog.UpdateArtist(c.UserContext(), artist); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewArtistResponse(artist),
	})
}

// Delete handles DELETE /api/artists/:artistId.
func (h *ArtistsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteArtist(c.UserContext(), c.Params("artistId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "artist deleted",
	})
}
