package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// ArtistRepository encapsulates artist persistence.
type ArtistRepository interface {
	Create(ctx context.Context, artist *domain.Artist) error
	Update(ctx context.Context, artist *domain.Artist) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Artist, error)
	List(ctx context.Context, limit, offset int) ([]domain.Artist, error)
	SearchByName(ctx context.Context, term string, limit int) ([]domain.Artist, error)
}

type artistRepository struct {
	pool *pgxpool.Pool
}

// NewArtistRepository returns a Postgres-backed implementation.
func NewArtistRepository(pool *pgxpool.Pool) ArtistRepository {
	return &artistRepository{pool: pool}
}

func (r *artistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	const query = `
        INSERT INTO artists (name, bio, image_url)
        VALUES ($1,$2,$3)
        RETURNING artist_id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		artist.Name,
		artist.Bio,
		artist.ImageURL,
	).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
}

func (r *artistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	const query = `
        UPDATE artists SET name=$1, bio=$2, image_url=$3, updated_at=NOW()
        WHERE artist_id=$4`

	cmd, err := r.pool.Exec(ctx, query, artist.Name, artist.Bio, artist.ImageURL, artist.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *artistRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM artists WHERE artist_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *artistRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	const query = `
        SELECT artist_id, name, bio, image_url, created_at, updated_at
        FROM artists WHERE artist_id=$1`

	var artist domain.Artist
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&artist.ID,
		&artist.Name,
		&artist.Bio,
		&artist.ImageURL,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) List(ctx context.Context, limit, offset int) ([]domain.Artist, error) {
	const query = `
        SELECT artist_id, name, bio, image_url, created_at, updated_at
        FROM artists ORDER BY name LIMIT $1 OFFSET $2`
	return r.queryArtists(ctx, query, limit, offset)
}

func (r *artistRepository) SearchByName(ctx context.Context, term string, limit int) ([]domain.Artist, error) {
	const query = `
        SELECT artist_id, name, bio, image_url, created_at, updated_at
        FROM artists WHERE name ILIKE $1 ORDER BY name LIMIT $2`
	return r.queryArtists(ctx, query, term, limit)
}

func (r *artistRepository) queryArtists(ctx context.Context, query string, args ...any) ([]domain.Artist, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]domain.Artist, 0)
	for rows.Next() {
		var artist domain.Artist
		if err := rows.Scan(
			&artist.ID,
			&artist.Name,
			&artist.Bio,
			&artist.ImageURL,
			&artist.CreatedAt,
			&artist.UpdatedAt,
		); err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}
