package domain

import "time"

// Album groups songs under an artist.
type Album struct {
	ID            string
	Title         string
	ArtistID      *string
	ReleaseDate   *time.Time
	CoverImageURL *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	ArtistName *string
}
