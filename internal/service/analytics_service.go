package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/music-stream-service/internal/config"
	"github.com/spec-kit/music-stream-service/internal/events"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

const (
	playCountKeyPrefix = "plays:song:"
	trendingKeyPrefix  = "plays:trending:"
)

// TrendingEntry is a song's rank within the trending window.
type TrendingEntry struct {
	SongID    string `json:"song_id"`
	PlayCount int64  `json:"play_count"`
}

// AnalyticsService keeps play counters and trending ranks in Redis. It
// serves the analytics API directly and also consumes play events
// published by the user service.
type AnalyticsService struct {
	redis      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AnalyticsConfig
}

// NewAnalyticsService creates the service.
func NewAnalyticsService(client *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AnalyticsConfig) *AnalyticsService {
	return &AnalyticsService{
		redis:      client,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to play events.
func (a *AnalyticsService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventPlayRecorded, a.handlePlayRecorded)
}

func (a *AnalyticsService) handlePlayRecorded(ctx context.Context, event events.Event) error {
	if err := a.TrackPlay(ctx, event.SongID); err != nil {
		a.logger.Warn("failed to track play from event",
			zap.String("song_id", event.SongID), zap.Error(err))
		return err
	}
	return nil
}

// TrackPlay increments the song's total counter and its score in the
// current trending bucket.
func (a *AnalyticsService) TrackPlay(ctx context.Context, songID string) error {
	if songID == "" {
		return apperrors.NewValidationError("song_id is required", nil)
	}

	bucket := a.trendingKey(time.Now())
	pipe := a.redis.TxPipeline()
	pipe.Incr(ctx, playCountKeyPrefix+songID)
	pipe.ZIncrBy(ctx, bucket, 1, songID)
	pipe.Expire(ctx, bucket, 2*a.trendingWindow())
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.NewUpstreamUnavailable("analytics store", err)
	}
	return nil
}

// SongPlayCount returns the total recorded plays for a song. Unknown
// songs report zero rather than an error.
func (a *AnalyticsService) SongPlayCount(ctx context.Context, songID string) (int64, error) {
	count, err := a.redis.Get(ctx, playCountKeyPrefix+songID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.NewUpstreamUnavailable("analytics store", err)
	}
	return count, nil
}

// Trending returns the highest-scored songs in the current bucket.
func (a *AnalyticsService) Trending(ctx context.Context, limit int) ([]TrendingEntry, error) {
	if limit <= 0 || limit > a.cfg.TrendingLimit {
		limit = a.cfg.TrendingLimit
	}

	entries, err := a.redis.ZRevRangeWithScores(ctx, a.trendingKey(time.Now()), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("analytics store", err)
	}

	trending := make([]TrendingEntry, 0, len(entries))
	for _, entry := range entries {
		songID, ok := entry.Member.(string)
		if !ok {
			continue
		}
		trending = append(trending, TrendingEntry{SongID: songID, PlayCount: int64(entry.Score)})
	}
	return trending, nil
}

func (a *AnalyticsService) trendingWindow() time.Duration {
	hours := a.cfg.TrendingWindowHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// trendingKey buckets trending scores by window so counts age out.
func (a *AnalyticsService) trendingKey(now time.Time) string {
	bucket := now.UTC().Truncate(a.trendingWindow())
	return fmt.Sprintf("%s%s", trendingKeyPrefix, bucket.Format("2006-01-02T15"))
}
