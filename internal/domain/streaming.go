package domain

import "time"

// TrackReference ties a catalog song to its location in the object store.
// An existing song with an empty AudioObjectKey has no playable asset,
// which is a different failure than the song being absent altogether.
type TrackReference struct {
	SongID         string
	AudioObjectKey string
}

// SignedPlaybackURL is a time-limited read URL for an audio object.
// It is computed on demand and never persisted; validity is enforced by
// the storage provider.
type SignedPlaybackURL struct {
	URL        string
	IssuedAt   time.Time
	TTLSeconds int
}
