package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/music-stream-service/internal/domain"
	"github.com/spec-kit/music-stream-service/internal/storage"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// TrackResolver looks up the storage reference for a song. Satisfied by
// repository.SongRepository.
type TrackResolver interface {
	GetTrackReference(ctx context.Context, id string) (*domain.TrackReference, error)
}

// StreamService issues time-limited playback URLs for catalog songs.
// URLs are derived fresh on every call and never cached; validity is
// enforced by the storage provider.
type StreamService struct {
	catalog TrackResolver
	store   storage.ObjectStore
	ttl     time.Duration
	logger  *zap.Logger
}

// NewStreamService builds the service. ttl is the signed URL validity window.
func NewStreamService(catalog TrackResolver, store storage.ObjectStore, ttl time.Duration, logger *zap.Logger) *StreamService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StreamService{catalog: catalog, store: store, ttl: ttl, logger: logger}
}

// PlaybackURL resolves a song to its audio object and signs a read URL.
//
// Three distinct not-found cases surface as 404 with distinct messages:
// the song is absent from the catalog, the song exists without an audio
// asset, or the catalog and the store have drifted and the object is
// gone. Transport failures against either collaborator are reported as
// upstream-unavailable instead, so callers can tell "cannot ever play"
// from "try again".
func (s *StreamService) PlaybackURL(ctx context.Context, songID string) (*domain.SignedPlaybackURL, error) {
	ref, err := s.catalog.GetTrackReference(ctx, songID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Song not found in catalog", map[string]any{"song_id": songID})
		}
		return nil, apperrors.NewUpstreamUnavailable("catalog", err)
	}

	if ref.AudioObjectKey == "" {
		return nil, apperrors.NewNotFound("Song does not have an associated audio file", map[string]any{"song_id": songID})
	}

	key := objectKey(ref.AudioObjectKey)

	// The catalog and the store can drift; confirm the object is really
	// there before signing.
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("object store", err)
	}
	if !exists {
		s.logger.Warn("audio object missing from store",
			zap.String("song_id", songID),
			zap.String("object_key", key))
		return nil, apperrors.NewNotFound("Audio file not found in storage", map[string]any{"song_id": songID})
	}

	url, err := s.store.SignedReadURL(ctx, key, s.ttl)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("object store", err)
	}

	return &domain.SignedPlaybackURL{
		URL:        url,
		IssuedAt:   time.Now(),
		TTLSeconds: int(s.ttl / time.Second),
	}, nil
}

// objectKey normalizes a stored reference to a bucket object key. Legacy
// catalog rows hold full https object URLs; for those the final path
// segment is the key. Bare keys pass through unchanged.
func objectKey(ref string) string {
	if !strings.Contains(ref, "://") {
		return ref
	}
	trimmed := strings.TrimRight(ref, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
