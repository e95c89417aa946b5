package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// GenreRepository encapsulates genre persistence.
type GenreRepository interface {
	List(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, id string) (*domain.Genre, error)
}

type genreRepository struct {
	pool *pgxpool.Pool
}

// NewGenreRepository returns a Postgres-backed implementation.
func NewGenreRepository(pool *pgxpool.Pool) GenreRepository {
	return &genreRepository{pool: pool}
}

func (r *genreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	const query = `SELECT genre_id, name, description FROM genres ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func (r *genreRepository) GetByID(ctx context.Context, id string) (*domain.Genre, error) {
	const query = `SELECT genre_id, name, description FROM genres WHERE genre_id=$1`

	var genre domain.Genre
	if err := r.pool.QueryRow(ctx, query, id).Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
		return nil, err
	}
	return &genre, nil
}
