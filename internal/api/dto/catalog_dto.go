package dto

import (
	"time"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// ArtistRequest payload for creating or updating an artist.
type ArtistRequest struct {
	Name     string  `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

// ArtistResponse is the JSON shape for artists.
type ArtistResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlbumRequest payload for creating or updating an album.
type AlbumRequest struct {
	Title         string     `json:"title"`
	ArtistID      *string    `json:"artist_id"`
	ReleaseDate   *time.Time `json:"release_date"`
	CoverImageURL *string    `json:"cover_image_url"`
}

// AlbumResponse is the JSON shape for albums.
type AlbumResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	ArtistID      *string    `json:"artist_id,omitempty"`
	ArtistName    *string    `json:"artist_name,omitempty"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GenreResponse is the JSON shape for genres.
type GenreResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ToModel converts the request into a domain artist.
func (r ArtistRequest) ToModel() *domain.Artist {
	return &domain.Artist{Name: r.Name, Bio: r.Bio, ImageURL: r.ImageURL}
}

// ToModel converts the request into a domain album.
func (r AlbumRequest) ToModel() *domain.Album {
	return &domain.Album{
		Title:         r.Title,
		ArtistID:      r.ArtistID,
		ReleaseDate:   r.ReleaseDate,
		CoverImageURL: r.CoverImageURL,
	}
}

// NewArtistResponse maps a domain artist.
func NewArtistResponse(artist *domain.Artist) ArtistResponse {
	return ArtistResponse{
		ID:        artist.ID,
		Name:      artist.Name,
		Bio:       artist.Bio,
		ImageURL:  artist.ImageURL,
		CreatedAt: artist.CreatedAt,
		UpdatedAt: artist.UpdatedAt,
	}
}

// NewArtistResponses maps a slice of domain artists.
func NewArtistResponses(artists []domain.Artist) []ArtistResponse {
	out := make([]ArtistResponse, 0, len(artists))
	for i := range artists {
		out = append(out, NewArtistResponse(&artists[i]))
	}
	return out
}

// NewAlbumResponse maps a domain album.
func NewAlbumResponse(album *domain.Album) AlbumResponse {
	return AlbumResponse{
		ID:            album.ID,
		Title:         album.Title,
		ArtistID:      album.ArtistID,
		ArtistName:    album.ArtistName,
		ReleaseDate:   album.ReleaseDate,
		CoverImageURL: album.CoverImageURL,
		CreatedAt:     album.CreatedAt,
		UpdatedAt:     album.UpdatedAt,
	}
}

// NewAlbumResponses maps a slice of domain albums.
func NewAlbumResponses(albums []domain.Album) []AlbumResponse {
	out := make([]AlbumResponse, 0, len(albums))
	for i := range albums {
		out = append(out, NewAlbumResponse(&albums[i]))
	}
	return out
}

// NewGenreResponses maps a slice of domain genres.
func NewGenreResponses(genres []domain.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, GenreResponse{ID: genre.ID, Name: genre.Name, Description: genre.Description})
	}
	return out
}
