package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

const identityKey = "auth_identity"

// Guard provides the authentication middleware variants. Require,
// Optional and RequireSameUser express three trust postures: owner-only
// endpoints, public endpoints enriched when a listener is logged in, and
// strictly per-user data access.
type Guard struct {
	verifier *Verifier
	logger   *zap.Logger
}

// NewGuard constructs the middleware set.
func NewGuard(verifier *Verifier, logger *zap.Logger) *Guard {
	return &Guard{verifier: verifier, logger: logger}
}

// Require enforces a valid bearer token. Requests without a credential
// get 401; requests with a credential that does not verify get 403. The
// verification failure cause is logged, never returned to the client.
func (g *Guard) Require(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("Access token required")
	}

	identity, err := g.verifier.Verify(token)
	if err != nil {
		g.logger.Warn("token verification failed", zap.Error(err))
		return apperrors.NewForbidden("Invalid or expired token")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional attaches an Identity when a valid token is present but never
// blocks the request. A failing token is deliberately discarded here;
// this is the one call site where verification errors are swallowed.
func (g *Guard) Optional(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Next()
	}

	identity, err := g.verifier.Verify(token)
	if err != nil {
		g.logger.Warn("optional auth: invalid token ignored", zap.Error(err))
		return c.Next()
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// RequireSameUser compares the userId path parameter against the
// authenticated identity. It expects Require to have run upstream.
func (g *Guard) RequireSameUser(c *fiber.Ctx) error {
	paramID := c.Params("userId")
	if paramID == "" {
		return apperrors.NewValidationError("User ID is required", nil)
	}

	identity, ok := IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	if identity.UserID != paramID {
		g.logger.Warn("cross-user access denied",
			zap.String("authenticated_user", identity.UserID),
			zap.String("requested_user", paramID))
		return apperrors.NewForbidden("Access denied to other user data")
	}

	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
