package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/music-stream-service/internal/domain"
	"github.com/spec-kit/music-stream-service/internal/service"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

type fakeResolver struct {
	refs map[string]string
	err  error
}

func (f *fakeResolver) GetTrackReference(ctx context.Context, id string) (*domain.TrackReference, error) {
	if f.err != nil {
		return nil, f.err
	}
	key, ok := f.refs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.TrackReference{SongID: id, AudioObjectKey: key}, nil
}

type fakeStore struct {
	objects   map[string]bool
	existsErr error
	signErr   error
	signCalls int
	lastKey   string
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	f.lastKey = key
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.objects[key], nil
}

func (f *fakeStore) SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signCalls++
	return fmt.Sprintf("https://storage.example.com/%s?sig=%d", key, f.signCalls), nil
}

func newStreamService(resolver *fakeResolver, store *fakeStore, ttl time.Duration) *service.StreamService {
	return service.NewStreamService(resolver, store, ttl, zap.NewNop())
}

func requireDomainError(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr
}

func TestStreamService_PlaybackURL(t *testing.T) {
	ctx := context.Background()

	t.Run("song absent from catalog", func(t *testing.T) {
		svc := newStreamService(&fakeResolver{refs: map[string]string{}}, &fakeStore{}, 0)
		_, err := svc.PlaybackURL(ctx, "missing")
		domainErr := requireDomainError(t, err)
		assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
		assert.Equal(t, "Song not found in catalog", domainErr.Message)
	})

	t.Run("song without an audio asset", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": ""}}
		svc := newStreamService(resolver, &fakeStore{}, 0)
		_, err := svc.PlaybackURL(ctx, "s1")
		domainErr := requireDomainError(t, err)
		assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
		assert.Equal(t, "Song does not have an associated audio file", domainErr.Message)
	})

	t.Run("object missing from the store", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": "track.mp3"}}
		store := &fakeStore{objects: map[string]bool{}}
		svc := newStreamService(resolver, store, 0)
		_, err := svc.PlaybackURL(ctx, "s1")
		domainErr := requireDomainError(t, err)
		assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
		assert.Equal(t, "Audio file not found in storage", domainErr.Message)
	})

	t.Run("store transport failure is upstream-unavailable, not not-found", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": "track.mp3"}}
		store := &fakeStore{existsErr: errors.New("connection refused")}
		svc := newStreamService(resolver, store, 0)
		_, err := svc.PlaybackURL(ctx, "s1")
		domainErr := requireDomainError(t, err)
		assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainErr.Code)
	})

	t.Run("signing failure is upstream-unavailable", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": "track.mp3"}}
		store := &fakeStore{
			objects: map[string]bool{"track.mp3": true},
			signErr: errors.New("credential error"),
		}
		svc := newStreamService(resolver, store, 0)
		_, err := svc.PlaybackURL(ctx, "s1")
		domainErr := requireDomainError(t, err)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", domainErr.Code)
	})

	t.Run("catalog transport failure is upstream-unavailable", func(t *testing.T) {
		svc := newStreamService(&fakeResolver{err: errors.New("pool closed")}, &fakeStore{}, 0)
		_, err := svc.PlaybackURL(ctx, "s1")
		domainErr := requireDomainError(t, err)
		assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	})

	t.Run("success issues a 24h URL by default", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": "track.mp3"}}
		store := &fakeStore{objects: map[string]bool{"track.mp3": true}}
		svc := newStreamService(resolver, store, 0)

		signed, err := svc.PlaybackURL(ctx, "s1")
		require.NoError(t, err)
		assert.Contains(t, signed.URL, "track.mp3")
		assert.Equal(t, 86400, signed.TTLSeconds)
		assert.WithinDuration(t, time.Now(), signed.IssuedAt, time.Second)
	})

	t.Run("configured TTL overrides the default", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": "track.mp3"}}
		store := &fakeStore{objects: map[string]bool{"track.mp3": true}}
		svc := newStreamService(resolver, store, 15*time.Minute)

		signed, err := svc.PlaybackURL(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 900, signed.TTLSeconds)
	})

	t.Run("repeated requests each get a fresh URL", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{"s1": "track.mp3"}}
		store := &fakeStore{objects: map[string]bool{"track.mp3": true}}
		svc := newStreamService(resolver, store, 0)

		first, err := svc.PlaybackURL(ctx, "s1")
		require.NoError(t, err)
		second, err := svc.PlaybackURL(ctx, "s1")
		require.NoError(t, err)
		assert.NotEqual(t, first.URL, second.URL)
		assert.Equal(t, 2, store.signCalls)
	})

	t.Run("legacy full URL references resolve to their final path segment", func(t *testing.T) {
		resolver := &fakeResolver{refs: map[string]string{
			"s1": "https://storage.googleapis.com/music-bucket/audio/track.mp3",
		}}
		store := &fakeStore{objects: map[string]bool{"track.mp3": true}}
		svc := newStreamService(resolver, store, 0)

		signed, err := svc.PlaybackURL(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "track.mp3", store.lastKey)
		assert.Contains(t, signed.URL, "track.mp3")
	})
}
