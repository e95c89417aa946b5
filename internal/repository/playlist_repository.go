package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// PlaylistRepository encapsulates playlist persistence.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id, userID string) error
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Playlist, error)
	AddSong(ctx context.Context, playlistID, songID string) error
	RemoveSong(ctx context.Context, playlistID, songID string) error
	ListSongs(ctx context.Context, playlistID string) ([]domain.Song, error)
}

type playlistRepository struct {
	pool *pgxpool.Pool
}

// NewPlaylistRepository returns a Postgres-backed implementation.
func NewPlaylistRepository(pool *pgxpool.Pool) PlaylistRepository {
	return &playlistRepository{pool: pool}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	const query = `
        INSERT INTO playlists (user_id, name, is_public)
        VALUES ($1,$2,$3)
        RETURNING playlist_id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		playlist.UserID,
		playlist.Name,
		playlist.IsPublic,
	).Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
}

// Delete removes a playlist only when it belongs to userID.
func (r *playlistRepository) Delete(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM playlists WHERE playlist_id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	const query = `
        SELECT p.playlist_id, p.user_id, p.name, p.is_public, p.created_at, p.updated_at,
               COUNT(ps.song_id)
        FROM playlists p
        LEFT JOIN playlist_songs ps ON p.playlist_id = ps.playlist_id
        WHERE p.playlist_id=$1
        GROUP BY p.playlist_id`

	var playlist domain.Playlist
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&playlist.ID,
		&playlist.UserID,
		&playlist.Name,
		&playlist.IsPublic,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
		&playlist.SongCount,
	); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.Playlist, error) {
	const query = `
        SELECT p.playlist_id, p.user_id, p.name, p.is_public, p.created_at, p.updated_at,
               COUNT(ps.song_id)
        FROM playlists p
        LEFT JOIN playlist_songs ps ON p.playlist_id = ps.playlist_id
        WHERE p.user_id=$1
        GROUP BY p.playlist_id
        ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := make([]domain.Playlist, 0)
	for rows.Next() {
		var playlist domain.Playlist
		if err := rows.Scan(
			&playlist.ID,
			&playlist.UserID,
			&playlist.Name,
			&playlist.IsPublic,
			&playlist.CreatedAt,
			&playlist.UpdatedAt,
			&playlist.SongCount,
		); err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	return playlists, rows.Err()
}

func (r *playlistRepository) AddSong(ctx context.Context, playlistID, songID string) error {
	const query = `
        INSERT INTO playlist_songs (playlist_id, song_id, position)
        VALUES ($1, $2, COALESCE((SELECT MAX(position)+1 FROM playlist_songs WHERE playlist_id=$1), 0))
        ON CONFLICT (playlist_id, song_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, playlistID, songID)
	return err
}

func (r *playlistRepository) RemoveSong(ctx context.Context, playlistID, songID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id=$1 AND song_id=$2`, playlistID, songID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *playlistRepository) ListSongs(ctx context.Context, playlistID string) ([]domain.Song, error) {
	const query = `
        SELECT s.song_id, s.title, s.artist_id, s.album_id, s.genre_id, s.duration,
               s.track_number, s.audio_object_key, s.created_at, s.updated_at,
               a.name, al.title
        FROM playlist_songs ps
        JOIN songs s ON ps.song_id = s.song_id
        LEFT JOIN artists a ON s.artist_id = a.artist_id
        LEFT JOIN albums al ON s.album_id = al.album_id
        WHERE ps.playlist_id=$1
        ORDER BY ps.position`

	rows, err := r.pool.Query(ctx, query, playlistID)
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

func scanJoinedSong(row pgx.Row, song *domain.Song) error {
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
