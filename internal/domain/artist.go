package domain

import "time"

// Artist is a catalog artist.
type Artist struct {
	ID        string
	Name      string
	Bio       *string
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
