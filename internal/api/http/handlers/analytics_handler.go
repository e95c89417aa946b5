package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-stream-service/internal/api/dto"
	"github.com/spec-kit/music-stream-service/internal/service"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// AnalyticsHandler exposes play counter endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analyticsService}
}

// TrackPlay handles POST /api/analytics/plays.
func (h *AnalyticsHandler) TrackPlay(c *fiber.Ctx) error {
	var req dto.TrackPlayRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.analytics.TrackPlay(c.UserContext(), req.SongID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "play tracked",
		"songId":  req.SongID,
	})
}

// SongStats handles GET /api/analytics/songs/:songId.
func (h *AnalyticsHandler) SongStats(c *fiber.Ctx) error {
	songID := c.Params("songId")

	count, err := h.analytics.SongPlayCount(c.UserContext(), songID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"songId":    songID,
		"playCount": count,
	})
}

// Trending handles GET /api/analytics/trending.
func (h *AnalyticsHandler) Trending(c *fiber.Ctx) error {
	entries, err := h.analytics.Trending(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"trending": entries,
		"count":    len(entries),
	})
}
