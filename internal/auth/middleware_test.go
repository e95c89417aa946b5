package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/music-stream-service/internal/api/http"
	"github.com/spec-kit/music-stream-service/internal/auth"
	"github.com/spec-kit/music-stream-service/internal/config"
)

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenIssuer, *int) {
	t.Helper()

	cfg := config.AuthConfig{JWTSecret: testSecret, AccessTokenTTLMinutes: 5}
	guard := auth.NewGuard(auth.NewVerifier(cfg), zap.NewNop())

	invocations := 0
	echoIdentity := func(c *fiber.Ctx) error {
		invocations++
		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			return c.JSON(fiber.Map{"success": true, "anonymous": true})
		}
		return c.JSON(fiber.Map{"success": true, "userId": identity.UserID})
	}

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	app.Get("/protected", guard.Require, echoIdentity)
	app.Get("/public", guard.Optional, echoIdentity)
	app.Get("/users/:userId/history", guard.Require, guard.RequireSameUser, echoIdentity)
	app.Get("/unguarded/:userId", guard.RequireSameUser, echoIdentity)

	return app, auth.NewTokenIssuer(cfg), &invocations
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func TestGuard_Require(t *testing.T) {
	app, issuer, invocations := newTestApp(t)

	t.Run("missing token yields 401 and skips the handler", func(t *testing.T) {
		*invocations = 0
		resp, body := doRequest(t, app, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Access token required", body["error"])
		assert.Zero(t, *invocations)
	})

	t.Run("malformed token yields 403 and skips the handler", func(t *testing.T) {
		*invocations = 0
		resp, body := doRequest(t, app, "/protected", "not-a-jwt")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Invalid or expired token", body["error"])
		assert.Zero(t, *invocations)
	})

	t.Run("non-bearer scheme is treated as missing credential", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token attaches the identity", func(t *testing.T) {
		token, _, err := issuer.Issue("user-7", "a@b.c", nil)
		require.NoError(t, err)
		resp, body := doRequest(t, app, "/protected", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "user-7", body["userId"])
	})
}

func TestGuard_Optional(t *testing.T) {
	app, issuer, _ := newTestApp(t)

	t.Run("no token passes through anonymously", func(t *testing.T) {
		resp, body := doRequest(t, app, "/public", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["anonymous"])
	})

	t.Run("invalid token is ignored, not rejected", func(t *testing.T) {
		resp, body := doRequest(t, app, "/public", "garbage")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["anonymous"])
	})

	t.Run("valid token attaches the identity", func(t *testing.T) {
		token, _, err := issuer.Issue("user-9", "", nil)
		require.NoError(t, err)
		resp, body := doRequest(t, app, "/public", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "user-9", body["userId"])
	})
}

func TestGuard_RequireSameUser(t *testing.T) {
	app, issuer, invocations := newTestApp(t)

	token, _, err := issuer.Issue("user-42", "", nil)
	require.NoError(t, err)

	t.Run("matching user passes", func(t *testing.T) {
		resp, body := doRequest(t, app, "/users/user-42/history", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "user-42", body["userId"])
	})

	t.Run("other user's data is forbidden", func(t *testing.T) {
		*invocations = 0
		resp, body := doRequest(t, app, "/users/user-99/history", token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Access denied to other user data", body["error"])
		assert.Zero(t, *invocations)
	})

	t.Run("missing identity yields 401 even with a path param", func(t *testing.T) {
		resp, body := doRequest(t, app, "/unguarded/user-42", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Authentication required", body["error"])
	})
}
