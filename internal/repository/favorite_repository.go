package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// FavoriteRepository tracks songs a user has liked.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, songID string) error
	Remove(ctx context.Context, userID, songID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Song, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository returns a Postgres-backed implementation.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, songID string) error {
	const query = `
        INSERT INTO favorites (user_id, song_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, song_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, songID)
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, songID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id=$1 AND song_id=$2`, userID, songID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Song, error) {
	const query = `
        SELECT s.song_id, s.title, s.artist_id, s.album_id, s.genre_id, s.duration,
               s.track_number, s.audio_object_key, s.created_at, s.updated_at,
               a.name, al.title
        FROM favorites f
        JOIN songs s ON f.song_id = s.song_id
        LEFT JOIN artists a ON s.artist_id = a.artist_id
        LEFT JOIN albums al ON s.album_id = al.album_id
        WHERE f.user_id=$1
        ORDER BY f.added_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := make([]domain.Song, 0)
	for rows.Next() {
		var song domain.Song
		if err := scanJoinedSong(rows, &song); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}
