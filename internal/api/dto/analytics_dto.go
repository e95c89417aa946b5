package dto

// TrackPlayRequest payload for the analytics play endpoint.
type TrackPlayRequest struct {
	SongID string `json:"song_id"`
}
