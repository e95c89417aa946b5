package dto

import "time"

// UserRegisterRequest payload for new listeners.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileUpdateRequest payload for profile changes; nil fields are untouched.
type ProfileUpdateRequest struct {
	Name            *string `json:"name"`
	Country         *string `json:"country"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// FavoriteRequest payload for liking a song.
type FavoriteRequest struct {
	SongID string `json:"song_id"`
}

// PlayRequest payload for recording a play.
type PlayRequest struct {
	SongID   string `json:"song_id"`
	Duration *int   `json:"duration"`
}

// PlaylistCreateRequest payload for new playlists.
type PlaylistCreateRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

// PlaylistSongRequest payload for adding a song to a playlist.
type PlaylistSongRequest struct {
	SongID string `json:"song_id"`
}
