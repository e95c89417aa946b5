package domain

import "time"

// Playlist is a user-owned ordered collection of songs.
type Playlist struct {
	ID        string
	UserID    string
	Name      string
	IsPublic  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	SongCount int
}

// PlaylistSong is a song entry within a playlist.
type PlaylistSong struct {
	PlaylistID string
	SongID     string
	Position   int
	AddedAt    time.Time
}

// Favorite marks a song a user has liked.
type Favorite struct {
	UserID  string
	SongID  string
	AddedAt time.Time
}

// PlayRecord is a single listening-history entry.
type PlayRecord struct {
	ID          string
	UserID      string
	SongID      string
	PlayedAt    time.Time
	DurationSec *int
}

// ListeningStats summarizes a user's play history.
type ListeningStats struct {
	TotalPlays    int64
	UniqueSongs   int64
	TotalDuration int64
	FirstPlayedAt *time.Time
	LastPlayedAt  *time.Time
}
