package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-stream-service/internal/auth"
	"github.com/spec-kit/music-stream-service/internal/config"
	"github.com/spec-kit/music-stream-service/internal/domain"
	"github.com/spec-kit/music-stream-service/internal/events"
	"github.com/spec-kit/music-stream-service/internal/repository"
	apperrors "github.com/spec-kit/music-stream-service/pkg/util"
)

// UserService coordinates account, favorites, playlist and history flows.
type UserService struct {
	users      repository.UserRepository
	favorites  repository.FavoriteRepository
	playlists  repository.PlaylistRepository
	history    repository.PlayHistoryRepository
	issuer     *auth.TokenIssuer
	dispatcher events.Dispatcher
	bcryptCost int
}

// UserDependencies encapsulates repo requirements for the user service.
type UserDependencies struct {
	UserRepo        repository.UserRepository
	FavoriteRepo    repository.FavoriteRepository
	PlaylistRepo    repository.PlaylistRepository
	PlayHistoryRepo repository.PlayHistoryRepository
	Dispatcher      events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		favorites:  deps.FavoriteRepo,
		playlists:  deps.PlaylistRepo,
		history:    deps.PlayHistoryRepo,
		issuer:     auth.NewTokenIssuer(cfg.Auth),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a listener account and issues a token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.issuer.Issue(user.ID, user.Email, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a listener.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.issuer.Issue(user.ID, user.Email, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Profile loads the account for the authenticated user.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User not found", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name, country, imageURL *string) (*domain.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, apperrors.NewValidationError("name must not be blank", nil)
		}
		user.Name = *name
	}
	if country != nil {
		user.Country = country
	}
	if imageURL != nil {
		user.ProfileImageURL = imageURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddFavorite marks a song as liked and emits an event.
func (s *UserService) AddFavorite(ctx context.Context, userID, songID string) error {
	if songID == "" {
		return apperrors.NewValidationError("song_id is required", nil)
	}
	if err := s.favorites.Add(ctx, userID, songID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFavoriteAdded,
		SongID:    songID,
		UserID:    userID,
		Timestamp: time.Now(),
	})
	return nil
}

// RemoveFavorite unlikes a song.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, songID string) error {
	if err := s.favorites.Remove(ctx, userID, songID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Favorite not found", map[string]any{"song_id": songID})
		}
		return err
	}
	return nil
}

// Favorites lists the user's liked songs.
func (s *UserService) Favorites(ctx context.Context, userID string) ([]domain.Song, error) {
	return s.favorites.ListByUser(ctx, userID)
}

// RecordPlay persists a history row and publishes a play event for the
// analytics pipeline.
func (s *UserService) RecordPlay(ctx context.Context, userID, songID string, durationSec *int) (*domain.PlayRecord, error) {
	if songID == "" {
		return nil, apperrors.NewValidationError("song_id is required", nil)
	}

	record := &domain.PlayRecord{
		UserID:      userID,
		SongID:      songID,
		DurationSec: durationSec,
	}
	if err := s.history.Record(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPlayRecorded,
		SongID:    songID,
		UserID:    userID,
		Timestamp: record.PlayedAt,
		Payload:   events.PlayRecordedPayload{DurationSec: durationSec},
	})
	return record, nil
}

// History lists the user's recent plays.
func (s *UserService) History(ctx context.Context, userID string, limit, offset int) ([]domain.PlayRecord, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.history.ListByUser(ctx, userID, limit, offset)
}

// Stats summarizes the user's listening history.
func (s *UserService) Stats(ctx context.Context, userID string) (*domain.ListeningStats, error) {
	return s.history.StatsByUser(ctx, userID)
}

// CreatePlaylist creates a user-owned playlist.
func (s *UserService) CreatePlaylist(ctx context.Context, userID, name string, isPublic bool) (*domain.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	playlist := &domain.Playlist{UserID: userID, Name: name, IsPublic: isPublic}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Playlists lists the user's playlists.
func (s *UserService) Playlists(ctx context.Context, userID string) ([]domain.Playlist, error) {
	return s.playlists.ListByUser(ctx, userID)
}

// DeletePlaylist removes a playlist owned by the user.
func (s *UserService) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	if err := s.playlists.Delete(ctx, playlistID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Playlist not found", map[string]any{"playlist_id": playlistID})
		}
		return err
	}
	return nil
}

// AddPlaylistSong appends a song to a playlist the user owns.
func (s *UserService) AddPlaylistSong(ctx context.Context, userID, playlistID, songID string) error {
	if songID == "" {
		return apperrors.NewValidationError("song_id is required", nil)
	}
	if err := s.requireOwnership(ctx, userID, playlistID); err != nil {
		return err
	}
	return s.playlists.AddSong(ctx, playlistID, songID)
}

// RemovePlaylistSong removes a song from a playlist the user owns.
func (s *UserService) RemovePlaylistSong(ctx context.Context, userID, playlistID, songID string) error {
	if err := s.requireOwnership(ctx, userID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.RemoveSong(ctx, playlistID, songID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Song not in playlist", map[string]any{"song_id": songID})
		}
		return err
	}
	return nil
}

// PlaylistSongs lists songs in a playlist the user owns or that is public.
func (s *UserService) PlaylistSongs(ctx context.Context, userID, playlistID string) ([]domain.Song, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Playlist not found", map[string]any{"playlist_id": playlistID})
		}
		return nil, err
	}
	if playlist.UserID != userID && !playlist.IsPublic {
		return nil, apperrors.NewForbidden("Access denied to other user data")
	}
	return s.playlists.ListSongs(ctx, playlistID)
}

func (s *UserService) requireOwnership(ctx context.Context, userID, playlistID string) error {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Playlist not found", map[string]any{"playlist_id": playlistID})
		}
		return err
	}
	if playlist.UserID != userID {
		return apperrors.NewForbidden("Access denied to other user data")
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
