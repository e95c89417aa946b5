package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPlayRecorded  EventType = "play_recorded"
	EventFavoriteAdded EventType = "favorite_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SongID    string      `json:"song_id"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PlayRecordedPayload payload.
type PlayRecordedPayload struct {
	DurationSec *int `json:"duration_sec,omitempty"`
}

// FavoriteAddedPayload payload.
type FavoriteAddedPayload struct {
	SongTitle string `json:"song_title,omitempty"`
}
