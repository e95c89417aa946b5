package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-stream-service/internal/domain"
	"github.com/spec-kit/music-stream-service/internal/repository"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

const (
	searchLimitCombined = 20
	searchLimitSingle   = 50
	defaultPageSize     = 50
)

// SearchResults groups matches across catalog entities.
type SearchResults struct {
	Songs   []domain.Song
	Artists []domain.Artist
	Albums  []domain.Album
}

// CatalogService coordinates catalog reads and writes.
type CatalogService struct {
	songs   repository.SongRepository
	artists repository.ArtistRepository
	albums  repository.AlbumRepository
	genres  repository.GenreRepository
}

// CatalogDependencies encapsulates repo requirements for the catalog service.
type CatalogDependencies struct {
	SongRepo   repository.SongRepository
	ArtistRepo repository.ArtistRepository
	AlbumRepo  repository.AlbumRepository
	GenreRepo  repository.GenreRepository
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		songs:   deps.SongRepo,
		artists: deps.ArtistRepo,
		albums:  deps.AlbumRepo,
		genres:  deps.GenreRepo,
	}
}

// ListSongs returns a page of songs with artist/album names.
func (s *CatalogService) ListSongs(ctx context.Context, limit, offset int) ([]domain.Song, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.songs.List(ctx, limit, offset)
}

// GetSong fetches one song.
func (s *CatalogService) GetSong(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.songs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Song not found", map[string]any{"song_id": id})
		}
		return nil, err
	}
	return song, nil
}

// CreateSong validates and inserts a catalog entry.
func (s *CatalogService) CreateSong(ctx context.Context, song *domain.Song) error {
	if strings.TrimSpace(song.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	return s.songs.Create(ctx, song)
}

// UpdateSong updates a catalog entry.
func (s *CatalogService) UpdateSong(ctx context.Context, song *domain.Song) error {
	if strings.TrimSpace(song.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if err := s.songs.Update(ctx, song); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Song not found", map[string]any{"song_id": song.ID})
		}
		return err
	}
	return nil
}

// DeleteSong removes a song and returns the deleted row.
func (s *CatalogService) DeleteSong(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.songs.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Song not found", map[string]any{"song_id": id})
		}
		return nil, err
	}
	return song, nil
}

// ListArtists returns a page of artists.
func (s *CatalogService) ListArtists(ctx context.Context, limit, offset int) ([]domain.Artist, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.artists.List(ctx, limit, offset)
}

// GetArtist fetches one artist.
func (s *CatalogService) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	artist, err := s.artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Artist not found", map[string]any{"artist_id": id})
		}
		return nil, err
	}
	return artist, nil
}

// CreateArtist inserts an artist.
func (s *CatalogService) CreateArtist(ctx context.Context, artist *domain.Artist) error {
	if strings.TrimSpace(artist.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	return s.artists.Create(ctx, artist)
}

// UpdateArtist updates an artist.
func (s *CatalogService) UpdateArtist(ctx context.Context, artist *domain.Artist) error {
	if strings.TrimSpace(artist.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if err := s.artists.Update(ctx, artist); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Artist not found", map[string]any{"artist_id": artist.ID})
		}
		return err
	}
	return nil
}

// DeleteArtist removes an artist.
func (s *CatalogService) DeleteArtist(ctx context.Context, id string) error {
	if err := s.artists.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Artist not found", map[string]any{"artist_id": id})
		}
		return err
	}
	return nil
}

// ArtistSongs lists an artist's songs.
func (s *CatalogService) ArtistSongs(ctx context.Context, artistID string) ([]domain.Song, error) {
	if _, err := s.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}
	return s.songs.ListByArtist(ctx, artistID)
}

// ArtistAlbums lists an artist's albums.
func (s *CatalogService) ArtistAlbums(ctx context.Context, artistID string) ([]domain.Album, error) {
	if _, err := s.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}
	return s.albums.ListByArtist(ctx, artistID)
}

// ListAlbums returns a page of albums.
func (s *CatalogService) ListAlbums(ctx context.Context, limit, offset int) ([]domain.Album, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.albums.List(ctx, limit, offset)
}

// GetAlbum fetches one album.
func (s *CatalogService) GetAlbum(ctx context.Context, id string) (*domain.Album, error) {
	album, err := s.albums.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Album not found", map[string]any{"album_id": id})
		}
		return nil, err
	}
	return album, nil
}

// CreateAlbum inserts an album.
func (s *CatalogService) CreateAlbum(ctx context.Context, album *domain.Album) error {
	if strings.TrimSpace(album.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	return s.albums.Create(ctx, album)
}

// UpdateAlbum updates an album.
func (s *CatalogService) UpdateAlbum(ctx context.Context, album *domain.Album) error {
	if strings.TrimSpace(album.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if err := s.albums.Update(ctx, album); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Album not found", map[string]any{"album_id": album.ID})
		}
		return err
	}
	return nil
}

// DeleteAlbum removes an album.
func (s *CatalogService) DeleteAlbum(ctx context.Context, id string) error {
	if err := s.albums.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Album not found", map[string]any{"album_id": id})
		}
		return err
	}
	return nil
}

// AlbumSongs lists an album's songs in track order.
func (s *CatalogService) AlbumSongs(ctx context.Context, albumID string) ([]domain.Song, error) {
	if _, err := s.GetAlbum(ctx, albumID); err != nil {
		return nil, err
	}
	return s.songs.ListByAlbum(ctx, albumID)
}

// ListGenres returns all genres.
func (s *CatalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.List(ctx)
}

// GetGenre fetches one genre.
func (s *CatalogService) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	genre, err := s.genres.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Genre not found", map[string]any{"genre_id": id})
		}
		return nil, err
	}
	return genre, nil
}

// GenreSongs lists a genre's songs.
func (s *CatalogService) GenreSongs(ctx context.Context, genreID string) ([]domain.Song, error) {
	if _, err := s.GetGenre(ctx, genreID); err != nil {
		return nil, err
	}
	return s.songs.ListByGenre(ctx, genreID)
}

// Search runs the combined song/artist/album search.
func (s *CatalogService) Search(ctx context.Context, q string) (*SearchResults, error) {
	term, err := searchTerm(q)
	if err != nil {
		return nil, err
	}

	songs, err := s.songs.SearchByTitle(ctx, term, searchLimitCombined)
	if err != nil {
		return nil, err
	}
	artists, err := s.artists.SearchByName(ctx, term, searchLimitCombined)
	if err != nil {
		return nil, err
	}
	albums, err := s.albums.SearchByTitle(ctx, term, searchLimitCombined)
	if err != nil {
		return nil, err
	}

	return &SearchResults{Songs: songs, Artists: artists, Albums: albums}, nil
}

// SearchSongs matches songs by title.
func (s *CatalogService) SearchSongs(ctx context.Context, q string) ([]domain.Song, error) {
	term, err := searchTerm(q)
	if err != nil {
		return nil, err
	}
	return s.songs.SearchByTitle(ctx, term, searchLimitSingle)
}

// SearchArtists matches artists by name.
func (s *CatalogService) SearchArtists(ctx context.Context, q string) ([]domain.Artist, error) {
	term, err := searchTerm(q)
	if err != nil {
		return nil, err
	}
	return s.artists.SearchByName(ctx, term, searchLimitSingle)
}

// SearchAlbums matches albums by title.
func (s *CatalogService) SearchAlbums(ctx context.Context, q string) ([]domain.Album, error) {
	term, err := searchTerm(q)
	if err != nil {
		return nil, err
	}
	return s.albums.SearchByTitle(ctx, term, searchLimitSingle)
}

func searchTerm(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", apperrors.NewValidationError(`Query parameter "q" is required`, nil)
	}
	return "%" + q + "%", nil
}
