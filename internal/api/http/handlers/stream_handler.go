package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/service"
)

// StreamHandler exposes the playback URL endpoint.
type StreamHandler struct {
	stream *service.StreamService
}

// NewStreamHandler constructs handler.
func NewStreamHandler(stream *service.StreamService) *StreamHandler {
	return &StreamHandler{stream: stream}
}

// StreamURL handles GET /api/stream/songs/:songId/stream-url.
func (h *StreamHandler) StreamURL(c *fiber.Ctx) error {
	songID := c.Params("songId")

	signed, err := h.stream.PlaybackURL(c.UserContext(), songID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"url":       signed.URL,
		"expiresIn": signed.TTLSeconds,
		"songId":    songID,
	})
}
