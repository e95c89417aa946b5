package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// PlayHistoryRepository records and reads listening history.
type PlayHistoryRepository interface {
	Record(ctx context.Context, record *domain.PlayRecord) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.PlayRecord, error)
	StatsByUser(ctx context.Context, userID string) (*domain.ListeningStats, error)
}

type playHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPlayHistoryRepository returns a Postgres-backed implementation.
func NewPlayHistoryRepository(pool *pgxpool.Pool) PlayHistoryRepository {
	return &playHistoryRepository{pool: pool}
}

func (r *playHistoryRepository) Record(ctx context.Context, record *domain.PlayRecord) error {
	const query = `
        INSERT INTO play_history (user_id, song_id, duration)
        VALUES ($1,$2,$3)
        RETURNING play_id, played_at`

	return r.pool.QueryRow(ctx, query,
		record.UserID,
		record.SongID,
		record.DurationSec,
	).Scan(&record.ID, &record.PlayedAt)
}

func (r *playHistoryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.PlayRecord, error) {
	const query = `
        SELECT play_id, user_id, song_id, played_at, duration
        FROM play_history
        WHERE user_id=$1
        ORDER BY played_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.PlayRecord, 0)
	for rows.Next() {
		var record domain.PlayRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.SongID,
			&record.PlayedAt,
			&record.DurationSec,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *playHistoryRepository) StatsByUser(ctx context.Context, userID string) (*domain.ListeningStats, error) {
	const query = `
        SELECT COUNT(*), COUNT(DISTINCT song_id), COALESCE(SUM(duration), 0),
               MIN(played_at), MAX(played_at)
        FROM play_history WHERE user_id=$1`

	var stats domain.ListeningStats
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.TotalPlays,
		&stats.UniqueSongs,
		&stats.TotalDuration,
		&stats.FirstPlayedAt,
		&stats.LastPlayedAt,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}
