package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-stream-service/pkg/util"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, util.ToDomainError(nil))
	})

	t.Run("domain errors pass through unchanged", func(t *testing.T) {
		original := util.NewForbidden("Access denied to other user data")
		converted := util.ToDomainError(original)
		assert.Equal(t, http.StatusForbidden, converted.HTTPStatus)
		assert.Equal(t, "FORBIDDEN", converted.Code)
		assert.Equal(t, "Access denied to other user data", converted.Message)
	})

	t.Run("wrapped domain errors are unwrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", util.NewUnauthorized("Access token required"))
		converted := util.ToDomainError(wrapped)
		assert.Equal(t, http.StatusUnauthorized, converted.HTTPStatus)
	})

	t.Run("missing rows become 404", func(t *testing.T) {
		converted := util.ToDomainError(fmt.Errorf("query song: %w", pgx.ErrNoRows))
		assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
		assert.Equal(t, "NOT_FOUND", converted.Code)
	})

	t.Run("unique violations become 409", func(t *testing.T) {
		cause := &pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "users_email_key",
		}
		converted := util.ToDomainError(fmt.Errorf("insert user: %w", cause))
		assert.Equal(t, http.StatusConflict, converted.HTTPStatus)
		assert.Equal(t, "CONFLICT", converted.Code)
	})

	t.Run("unknown errors become opaque 500s", func(t *testing.T) {
		converted := util.ToDomainError(errors.New("pool exhausted"))
		assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
		assert.Equal(t, "internal server error", converted.Message)
	})
}

func TestNewUpstreamUnavailable(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := util.NewUpstreamUnavailable("object store", cause)

	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainErr.Code)
	assert.Equal(t, "object store unavailable", domainErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestNotFoundVariantsStayDistinct(t *testing.T) {
	messages := []string{
		"Song not found in catalog",
		"Song does not have an associated audio file",
		"Audio file not found in storage",
	}
	seen := map[string]bool{}
	for _, msg := range messages {
		converted := util.ToDomainError(util.NewNotFound(msg, nil))
		assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
		assert.False(t, seen[converted.Message])
		seen[converted.Message] = true
	}
}
