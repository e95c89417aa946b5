package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/music-stream-service/internal/api/http"
	"github.com/spec-kit/music-stream-service/internal/api/http/handlers"
	"github.com/spec-kit/music-stream-service/internal/domain"
	"github.com/spec-kit/music-stream-service/internal/service"
)

type stubResolver struct {
	refs map[string]string
}

func (s *stubResolver) GetTrackReference(ctx context.Context, id string) (*domain.TrackReference, error) {
	key, ok := s.refs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.TrackReference{SongID: id, AudioObjectKey: key}, nil
}

type stubStore struct {
	objects map[string]bool
	signErr error
}

func (s *stubStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.objects[key], nil
}

func (s *stubStore) SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://storage.example.com/" + key + "?sig=abc", nil
}

func newStreamApp(resolver *stubResolver, store *stubStore) *fiber.App {
	svc := service.NewStreamService(resolver, store, 0, zap.NewNop())

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	handler := handlers.NewStreamHandler(svc)
	app.Get("/api/stream/songs/:songId/stream-url", handler.StreamURL)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestStreamURLEndpoint(t *testing.T) {
	resolver := &stubResolver{refs: map[string]string{
		"s1": "track.mp3",
		"s2": "",
		"s3": "gone.mp3",
	}}
	store := &stubStore{objects: map[string]bool{"track.mp3": true}}
	app := newStreamApp(resolver, store)

	t.Run("success returns url and expiry", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/stream/songs/s1/stream-url")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "https://storage.example.com/track.mp3?sig=abc", body["url"])
		assert.EqualValues(t, 86400, body["expiresIn"])
		assert.Equal(t, "s1", body["songId"])
	})

	t.Run("unknown song", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/stream/songs/ghost/stream-url")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Song not found in catalog", body["error"])
	})

	t.Run("song without audio asset", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/stream/songs/s2/stream-url")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Song does not have an associated audio file", body["error"])
	})

	t.Run("object missing from store", func(t *testing.T) {
		status, body := getJSON(t, app, "/api/stream/songs/s3/stream-url")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Audio file not found in storage", body["error"])
	})

	t.Run("signing failure maps to 502", func(t *testing.T) {
		failing := newStreamApp(resolver, &stubStore{
			objects: map[string]bool{"track.mp3": true},
			signErr: fmt.Errorf("credential refresh failed"),
		})
		status, body := getJSON(t, failing, "/api/stream/songs/s1/stream-url")
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", body["code"])
	})
}
