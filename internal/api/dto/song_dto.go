package dto

import (
	"time"

	"github.com/spec-kit/music-stream-service/internal/domain"
)

// SongRequest payload for creating or updating a song.
type SongRequest struct {
	Title          string  `json:"title"`
	ArtistID       *string `json:"artist_id"`
	AlbumID        *string `json:"album_id"`
	GenreID        *string `json:"genre_id"`
	Duration       int     `json:"duration"`
	TrackNumber    *int    `json:"track_number"`
	AudioObjectKey *string `json:"audio_object_key"`
}

// SongResponse is the JSON shape for catalog songs.
type SongResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ArtistID       *string   `json:"artist_id,omitempty"`
	AlbumID        *string   `json:"album_id,omitempty"`
	GenreID        *string   `json:"genre_id,omitempty"`
	Duration       int       `json:"duration"`
	TrackNumber    *int      `json:"track_number,omitempty"`
	AudioObjectKey *string   `json:"audio_object_key,omitempty"`
	ArtistName     *string   `json:"artist_name,omitempty"`
	AlbumTitle     *string   `json:"album_title,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToModel converts the request into a domain song.
func (r SongRequest) ToModel() *domain.Song {
	return &domain.Song{
		Title:          r.Title,
		ArtistID:       r.ArtistID,
		AlbumID:        r.AlbumID,
		GenreID:        r.GenreID,
		DurationSec:    r.Duration,
		TrackNumber:    r.TrackNumber,
		AudioObjectKey: r.AudioObjectKey,
	}
}

// NewSongResponse maps a domain song.
func NewSongResponse(song *domain.Song) SongResponse {
	return SongResponse{
		ID:             song.ID,
		Title:          song.Title,
		ArtistID:       song.ArtistID,
		AlbumID:        song.AlbumID,
		GenreID:        song.GenreID,
		Duration:       song.DurationSec,
		TrackNumber:    song.TrackNumber,
		AudioObjectKey: song.AudioObjectKey,
		ArtistName:     song.ArtistName,
		AlbumTitle:     song.AlbumTitle,
		CreatedAt:      song.CreatedAt,
		UpdatedAt:      song.UpdatedAt,
	}
}

// NewSongResponses maps a slice of domain songs.
func NewSongResponses(songs []domain.Song) []SongResponse {
	out := make([]SongResponse, 0, len(songs))
	for i := range songs {
		out = append(out, NewSongResponse(&songs[i]))
	}
	return out
}
