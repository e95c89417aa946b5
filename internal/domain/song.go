package domain

import "time"

// Song is the catalog entry for a single track.
type Song struct {
	ID             string
	Title          string
	ArtistID       *string
	AlbumID        *string
	GenreID        *string
	DurationSec    int
	TrackNumber    *int
	AudioObjectKey *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Denormalized display fields populated by list/search queries.
	ArtistName *string
	AlbumTitle *string
}
