package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// PlaylistsHandler exposes playlist management endpoints.
type PlaylistsHandler struct {
	users *service.UserService
}

// NewPlaylistsHandler constructs handler.
func NewPlaylistsHandler(userService *service.UserService) *PlaylistsHandler {
	return &PlaylistsHandler{users: userService}
}

// Create handles POST /api/playlists.
func (h *PlaylistsHandler) Create(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.PlaylistCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	playlist, err := h.users.CreatePlaylist(c.UserContext(), identity.UserID, req.Name, req.IsPublic)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"playlist": fiber.Map{
			"id":        playlist.ID,
			"name":      playlist.Name,
			"is_public": playlist.IsPublic,
		},
	})
}

// List handles GET /api/playlists.
func (h *PlaylistsHandler) List(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	playlists, err := h.users.Playlists(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}

	data := make([]fiber.Map, 0, len(playlists))
	for _, playlist := range playlists {
		data = append(data, fiber.Map{
			"id":         playlist.ID,
			"name":       playlist.Name,
			"is_public":  playlist.IsPublic,
			"song_count": playlist.SongCount,
			"created_at": playlist.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// Delete handles DELETE /api/playlists/:playlistId.
func (h *PlaylistsHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.users.DeletePlaylist(c.UserContext(), identity.UserID, c.Params("playlistId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "playlist deleted",
	})
}

// Songs handles GET /api/playlists/:playlistId/songs.
func (h *PlaylistsHandler) Songs(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	songs, err := h.users.PlaylistSongs(c.UserContext(), identity.UserID, c.Params("playlistId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewSongResponses(songs),
		"count":   len(songs),
	})
}

// AddSong handles POST /api/playlists/:playlistId/songs.
func (h *PlaylistsHandler) AddSong(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.PlaylistSongRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.users.AddPlaylistSong(c.UserContext(), identity.UserID, c.Params("playlistId"), req.SongID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "song added to playlist",
	})
}

// RemoveSong handles DELETE /api/playlists/:playlistId/songs/:songId.
func (h *PlaylistsHandler) RemoveSong(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.users.RemovePlaylistSong(c.UserContext(), identity.UserID, c.Params("playlistId"), c.Params("songId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "song removed from playlist",
	})
}
