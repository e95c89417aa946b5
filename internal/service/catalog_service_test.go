package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-stream-service/internal/domain"
	"github.com/spec-kit/music-stream-service/internal/repository"
	"github.com/spec-kit/music-stream-service/internal/service"
)

type fakeSongRepo struct {
	repository.SongRepository
	byID     map[string]*domain.Song
	byTitle  []domain.Song
	lastTerm string
	created  []*domain.Song
}

func (f *fakeSongRepo) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	song, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return song, nil
}

func (f *fakeSongRepo) Create(ctx context.Context, song *domain.Song) error {
	f.created = append(f.created, song)
	return nil
}

func (f *fakeSongRepo) SearchByTitle(ctx context.Context, term string, limit int) ([]domain.Song, error) {
	f.lastTerm = term
	if len(f.byTitle) > limit {
		return f.byTitle[:limit], nil
	}
	return f.byTitle, nil
}

type fakeArtistRepo struct {
	repository.ArtistRepository
	byName []domain.Artist
}

func (f *fakeArtistRepo) SearchByName(ctx context.Context, term string, limit int) ([]domain.Artist, error) {
	return f.byName, nil
}

type fakeAlbumRepo struct {
	repository.AlbumRepository
	byTitle []domain.Album
}

func (f *fakeAlbumRepo) SearchByTitle(ctx context.Context, term string, limit int) ([]domain.Album, error) {
	return f.byTitle, nil
}

func newCatalogService(songs *fakeSongRepo, artists *fakeArtistRepo, albums *fakeAlbumRepo) *service.CatalogService {
	return service.NewCatalogService(service.CatalogDependencies{
		SongRepo:   songs,
		ArtistRepo: artists,
		AlbumRepo:  albums,
	})
}

func TestCatalogService_GetSong(t *testing.T) {
	songs := &fakeSongRepo{byID: map[string]*domain.Song{
		"s1": {ID: "s1", Title: "Aurora"},
	}}
	svc := newCatalogService(songs, &fakeArtistRepo{}, &fakeAlbumRepo{})

	song, err := svc.GetSong(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Aurora", song.Title)

	_, err = svc.GetSong(context.Background(), "nope")
	domainErr := requireDomainError(t, err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "Song not found", domainErr.Message)
}

func TestCatalogService_CreateSong_RequiresTitle(t *testing.T) {
	songs := &fakeSongRepo{}
	svc := newCatalogService(songs, &fakeArtistRepo{}, &fakeAlbumRepo{})

	err := svc.CreateSong(context.Background(), &domain.Song{Title: "   "})
	domainErr := requireDomainError(t, err)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Empty(t, songs.created)

	require.NoError(t, svc.CreateSong(context.Background(), &domain.Song{Title: "Aurora"}))
	assert.Len(t, songs.created, 1)
}

func TestCatalogService_Search(t *testing.T) {
	songs := &fakeSongRepo{byTitle: []domain.Song{{ID: "s1", Title: "Night Drive"}}}
	artists := &fakeArtistRepo{byName: []domain.Artist{{ID: "a1", Name: "Nightfall"}}}
	albums := &fakeAlbumRepo{byTitle: []domain.Album{{ID: "al1", Title: "Nights"}}}
	svc := newCatalogService(songs, artists, albums)

	t.Run("blank query is rejected", func(t *testing.T) {
		for _, q := range []string{"", "   "} {
			_, err := svc.Search(context.Background(), q)
			domainErr := requireDomainError(t, err)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		}
	})

	t.Run("combined search hits all three repositories", func(t *testing.T) {
		results, err := svc.Search(context.Background(), "night")
		require.NoError(t, err)
		assert.Len(t, results.Songs, 1)
		assert.Len(t, results.Artists, 1)
		assert.Len(t, results.Albums, 1)
		assert.Equal(t, "%night%", songs.lastTerm)
	})

	t.Run("scoped song search trims the query", func(t *testing.T) {
		_, err := svc.SearchSongs(context.Background(), "  night  ")
		require.NoError(t, err)
		assert.Equal(t, "%night%", songs.lastTerm)
	})
}
