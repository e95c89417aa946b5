package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// AlbumRepository encapsulates album persistence.
type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) error
	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Album, error)
	List(ctx context.Context, limit, offset int) ([]domain.Album, error)
	ListByArtist(ctx context.Context, artistID string) ([]domain.Album, error)
	SearchByTitle(ctx context.Context, term string, limit int) ([]domain.Album, error)
}

type albumRepository struct {
	pool *pgxpool.Pool
}

// NewAlbumRepository returns a Postgres-backed implementation.
func NewAlbumRepository(pool *pgxpool.Pool) AlbumRepository {
	return &albumRepository{pool: pool}
}

const albumSelect = `
        SELECT al.album_id, al.title, al.artist_id, al.release_date, al.cover_image_url,
               al.created_at, al.updated_at, a.name
        FROM albums al
        LEFT JOIN artists a ON al.artist_id = a.artist_id`

func (r *albumRepository) Create(ctx context.Context, album *domain.Album) error {
	const query = `
        INSERT INTO albums (title, artist_id, release_date, cover_image_url)
        VALUES ($1,$2,$3,$4)
        RETURNING album_id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		album.Title,
		album.ArtistID,
		album.ReleaseDate,
		album.CoverImageURL,
	).Scan(&album.ID, &album.CreatedAt, &album.UpdatedAt)
}

func (r *albumRepository) Update(ctx context.Context, album *domain.Album) error {
	const query = `
        UPDATE albums SET title=$1, artist_id=$2, release_date=$3, cover_image_url=$4, updated_at=NOW()
        WHERE album_id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		album.Title,
		album.ArtistID,
		album.ReleaseDate,
		album.CoverImageURL,
		album.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *albumRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM albums WHERE album_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *albumRepository) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	query := albumSelect + ` WHERE al.album_id=$1`

	var album domain.Album
	if err := r.scanAlbum(r.pool.QueryRow(ctx, query, id), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) List(ctx context.Context, limit, offset int) ([]domain.Album, error) {
	query := albumSelect + ` ORDER BY al.title LIMIT $1 OFFSET $2`
	return r.queryAlbums(ctx, query, limit, offset)
}

func (r *albumRepository) ListByArtist(ctx context.Context, artistID string) ([]domain.Album, error) {
	query := albumSelect + ` WHERE al.artist_id=$1 ORDER BY al.release_date DESC NULLS LAST`
	return r.queryAlbums(ctx, query, artistID)
}

func (r *albumRepository) SearchByTitle(ctx context.Context, term string, limit int) ([]domain.Album, error) {
	query := albumSelect + ` WHERE al.title ILIKE $1 ORDER BY al.title LIMIT $2`
	return r.queryAlbums(ctx, query, term, limit)
}

func (r *albumRepository) queryAlbums(ctx context.Context, query string, args ...any) ([]domain.Album, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	albums := make([]domain.Album, 0)
	for rows.Next() {
		var album domain.Album
		if err := r.scanAlbum(rows, &album); err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

func (r *albumRepository) scanAlbum(row pgx.Row, album *domain.Album) error {
	return row.Scan(
		&album.ID,
		&album.Title,
		&album.ArtistID,
		&album.ReleaseDate,
		&album.CoverImageURL,
		&album.CreatedAt,
		&album.UpdatedAt,
		&album.ArtistName,
	)
}
