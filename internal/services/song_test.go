package services

import (
	"testing"

	"github.com/Jean612/SoundScape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewSongService(db)

	song, err := svc.Create(&CreateSongRequest{
		Title:           "Yesterday",
		Artist:          "The Beatles",
		DurationSeconds: 125,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(song.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yesterday", got.Title)

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestSongCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewSongService(db)

	_, err := svc.Create(&CreateSongRequest{Artist: "The Beatles", DurationSeconds: 125})
	assert.Error(t, err)

	_, err = svc.Create(&CreateSongRequest{Title: "Yesterday", Artist: "The Beatles"})
	assert.Error(t, err)
}

func TestSongListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewSongService(db)

	for _, s := range []CreateSongRequest{
		{Title: "Yesterday", Artist: "The Beatles", DurationSeconds: 125},
		{Title: "Let It Be", Artist: "The Beatles", DurationSeconds: 243},
		{Title: "Bohemian Rhapsody", Artist: "Queen", DurationSeconds: 354},
	} {
		req := s
		_, err := svc.Create(&req)
		require.NoError(t, err)
	}

	resp, err := svc.List(&SongFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.Total)

	resp, err = svc.List(&SongFilter{Artist: "Queen"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Bohemian Rhapsody", resp.Items[0].Title)

	resp, err = svc.List(&SongFilter{Query: "Let It"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Let It Be", resp.Items[0].Title)

	resp, err = svc.List(&SongFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.EqualValues(t, 3, resp.Total)
}

func TestSongUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSongService(db)

	song, err := svc.Create(&CreateSongRequest{Title: "Yesterdy", Artist: "The Beatles", DurationSeconds: 125})
	require.NoError(t, err)

	updated, err := svc.Update(song.ID, &CreateSongRequest{Title: "Yesterday"})
	require.NoError(t, err)
	assert.Equal(t, "Yesterday", updated.Title)
	assert.Equal(t, "The Beatles", updated.Artist)
	assert.Equal(t, 125, updated.DurationSeconds)
}

func TestSongDeleteRemovesPlaylistEntries(t *testing.T) {
	db := newTestDB(t)
	svc := NewSongService(db)
	playlists := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")

	song, err := svc.Create(&CreateSongRequest{Title: "Yesterday", Artist: "The Beatles", DurationSeconds: 125})
	require.NoError(t, err)
	playlist := createPlaylist(t, playlists, user.ID, "Mix")
	_, _, err = playlists.AddSong(playlist.ID, user.ID, song.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(song.ID))

	var entries int64
	require.NoError(t, db.Model(&models.PlaylistSong{}).Count(&entries).Error)
	assert.EqualValues(t, 0, entries)
}
