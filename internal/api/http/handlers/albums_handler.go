package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// AlbumsHandler exposes album endpoints.
type AlbumsHandler struct {
	catalog *service.CatalogService
}

// NewAlbumsHandler constructs handler.
func NewAlbumsHandler(catalog *service.CatalogService) *AlbumsHandler {
	return &AlbumsHandler{catalog: catalog}
}

// List handles GET /api/albums.
func (h *AlbumsHandler) List(c *fiber.Ctx) error {
	albums, err := h.catalog.ListAlbums(c.UserContext(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewAlbumResponses(albums),
		"count":   len(albums),
	})
}

// Get handles GET /api/albums/:albumId.
func (h *AlbumsHandler) Get(c *fiber.Ctx) error {
	album, err := h.catalog.GetAlbum(c.UserContext(), c.Params("albumId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewAlbumResponse(album),
	})
}

// Songs handles GET /api/albums/:albumId/songs.
func (h *AlbumsHandler) Songs(c *fiber.Ctx) error {
	songs, err := h.catalog.AlbumSongs(c.UserContext(), c.Params("albumId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponses(songs),
		"count":   len(songs),
	})
}

// Create handles POST /api/albums.
func (h *AlbumsHandler) Create(c *fiber.Ctx) error {
	var req dto.AlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	album := req.ToModel()
	if err := h.catalog.CreateAlbum(c.UserContext(), album); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewAlbumResponse(album),
	})
}

// Update handles PUT /api/albums/:albumId.
func (h *AlbumsHandler) Update(c *fiber.Ctx) error {
	var req dto.AlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	album := req.ToModel()
	album.ID = c.Params("albumId")
	if err := h.catalog.UpdateAlbum(c.UserContext(), album); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewAlbumResponse(album),
	})
}

// Delete handles DELETE /api/albums/:albumId.
func (h *AlbumsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteAlbum(c.UserContext(), c.Params("albumId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "album deleted",
	})
}
