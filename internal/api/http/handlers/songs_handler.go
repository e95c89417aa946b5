package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// SongsHandler exposes song CRUD endpoints.
type SongsHandler struct {
	catalog *service.CatalogService
}

// NewSongsHandler constructs handler.
func NewSongsHandler(catalog *service.CatalogService) *SongsHandler {
	return &SongsHandler{catalog: catalog}
}

// List handles GET /api/songs.
func (h *SongsHandler) List(c *fiber.Ctx) error {
	songs, err := h.catalog.ListSongs(c.UserContext(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponses(songs),
		"count":   len(songs),
	})
}

// Get handles GET /api/songs/:songId.
func (h *SongsHandler) Get(c *fiber.Ctx) error {
	song, err := h.catalog.GetSong(c.UserContext(), c.Params("songId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponse(song),
	})
}

// Create handles POST /api/songs.
func (h *SongsHandler) Create(c *fiber.Ctx) error {
	var req dto.SongRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	song := req.ToModel()
	if err := h.catalog.CreateSong(c.UserContext(), song); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponse(song),
	})
}

// Update handles PUT /api/songs/:songId.
func (h *SongsHandler) Update(c *fiber.Ctx) error {
	var req dto.SongRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	song := req.ToModel()
	song.ID = c.Params("songId")
	if err := h.catalog.UpdateSong(c.UserContext(), song); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponse(song),
	})
}

// Delete handles DELETE /api/songs/:songId.
func (h *SongsHandler) Delete(c *fiber.Ctx) error {
	song, err := h.catalog.DeleteSong(c.UserContext(), c.Params("songId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "song deleted",
		"data":    dto.NewSongResponse(song),
	})
}
