package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// SongRepository encapsulates song persistence.
type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) error
	Update(ctx context.Context, song *domain.Song) error
	Delete(ctx context.Context, id string) (*domain.Song, error)
	GetByID(ctx context.Context, id string) (*domain.Song, error)
	List(ctx context.Context, limit, offset int) ([]domain.Song, error)
	ListByArtist(ctx context.Context, artistID string) ([]domain.Song, error)
	ListByAlbum(ctx context.Context, albumID string) ([]domain.Song, error)
	ListByGenre(ctx context.Context, genreID string) ([]domain.Song, error)
	SearchByTitle(ctx context.Context, term string, limit int) ([]domain.Song, error)
	GetTrackReference(ctx context.Context, id string) (*domain.TrackReference, error)
}

type songRepository struct {
	pool *pgxpool.Pool
}

// NewSongRepository returns a Postgres-backed implementation.
func NewSongRepository(pool *pgxpool.Pool) SongRepository {
	return &songRepository{pool: pool}
}

const songColumns = `
        s.song_id, s.title, s.artist_id, s.album_id, s.genre_id, s.duration,
        s.track_number, s.audio_object_key, s.created_at, s.updated_at,
        a.name, al.title`

const songJoins = `
        FROM songs s
        LEFT JOIN artists a ON s.artist_id = a.artist_id
        LEFT JOIN albums al ON s.album_id = al.album_id`

func (r *songRepository) Create(ctx context.Context, song *domain.Song) error {
	const query = `
        INSERT INTO songs (title, artist_id, album_id, genre_id, duration, track_number, audio_object_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING song_id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		song.Title,
		song.ArtistID,
		song.AlbumID,
		song.GenreID,
		song.DurationSec,
		song.TrackNumber,
		song.AudioObjectKey,
	).Scan(&song.ID, &song.CreatedAt, &song.UpdatedAt)
}

func (r *songRepository) Update(ctx context.Context, song *domain.Song) error {
	const query = `
        UPDATE songs SET title=$1, artist_id=$2, album_id=$3, genre_id=$4,
            duration=$5, track_number=$6, audio_object_key=$7, updated_at=NOW()
        WHERE song_id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		song.Title,
		song.ArtistID,
		song.AlbumID,
		song.GenreID,
		song.DurationSec,
		song.TrackNumber,
		song.AudioObjectKey,
		song.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *songRepository) Delete(ctx context.Context, id string) (*domain.Song, error) {
	const query = `
        DELETE FROM songs WHERE song_id=$1
        RETURNING song_id, title, artist_id, album_id, genre_id, duration,
                  track_number, audio_object_key, created_at, updated_at`

	var song domain.Song
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&song.ID,
		&song.Title,
		&song.ArtistID,
		&song.AlbumID,
		&song.GenreID,
		&song.DurationSec,
		&song.TrackNumber,
		&song.AudioObjectKey,
		&song.CreatedAt,
		&song.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *songRepository) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	query := `SELECT ` + songColumns + songJoins + ` WHERE s.song_id=$1`

	var song domain.Song
	if err := r.scanSong(r.pool.QueryRow(ctx, query, id), &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *songRepository) List(ctx context.Context, limit, offset int) ([]domain.Song, error) {
	query := `SELECT ` + songColumns + songJoins + `
        ORDER BY s.title LIMIT $1 OFFSET $2`
	return r.querySongs(ctx, query, limit, offset)
}

func (r *songRepository) ListByArtist(ctx context.Context, artistID string) ([]domain.Song, error) {
	query := `SELECT ` + songColumns + songJoins + `
        WHERE s.artist_id=$1 ORDER BY s.title`
	return r.querySongs(ctx, query, artistID)
}

func (r *songRepository) ListByAlbum(ctx context.Context, albumID string) ([]domain.Song, error) {
	query := `SELECT ` + songColumns + songJoins + `
        WHERE s.album_id=$1 ORDER BY s.track_number NULLS LAST, s.title`
	return r.querySongs(ctx, query, albumID)
}

func (r *songRepository) ListByGenre(ctx context.Context, genreID string) ([]domain.Song, error) {
	query := `SELECT ` + songColumns + songJoins + `
        WHERE s.genre_id=$1 ORDER BY s.title`
	return r.querySongs(ctx, query, genreID)
}

func (r *songRepository) SearchByTitle(ctx context.Context, term string, limit int) ([]domain.Song, error) {
	query := `SELECT ` + songColumns + songJoins + `
        WHERE s.title ILIKE $1 ORDER BY s.title LIMIT $2`
	return r.querySongs(ctx, query, term, limit)
}

// GetTrackReference resolves the storage location for a song. The key may
// be NULL when a catalog row exists without an uploaded asset.
func (r *songRepository) GetTrackReference(ctx context.Context, id string) (*domain.TrackReference, error) {
	const query = `SELECT song_id, COALESCE(audio_object_key, '') FROM songs WHERE song_id=$1`

	var ref domain.TrackReference
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ref.SongID, &ref.AudioObjectKey); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *songRepository) querySongs(ctx context.Context, query string, args ...any) ([]domain.Song, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := make([]domain.Song, 0)
	for rows.Next() {
		var song domain.Song
		if err := r.scanSong(rows, &song); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func (r *songRepository) scanSong(row pgx.Row, song *domain.Song) error {
	return row.Scan(
		&song.ID,
		&song.Title,
		&song.ArtistID,
		&song.AlbumID,
		&song.GenreID,
		&song.DurationSec,
		&song.TrackNumber,
		&song.AudioObjectKey,
		&song.CreatedAt,
		&song.UpdatedAt,
		&song.ArtistName,
		&song.AlbumTitle,
	)
}
