package services

import (
	"testing"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPlaylist(t *testing.T, svc *PlaylistService, userID uint, name string) *models.Playlist {
	t.Helper()
	playlist, err := svc.Create(userID, &CreatePlaylistRequest{Name: name})
	require.NoError(t, err)
	return playlist
}

func createSong(t *testing.T, db *database.DB, title, artist string) *models.Song {
	t.Helper()
	song := models.Song{Title: title, Artist: artist, DurationSeconds: 200}
	require.NoError(t, db.Create(&song).Error)
	return &song
}

func TestPlaylistCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")

	playlist := createPlaylist(t, svc, user.ID, "Road Trip")
	assert.Equal(t, user.ID, playlist.UserID)

	name := "Long Road Trip"
	updated, err := svc.Update(playlist.ID, user.ID, &UpdatePlaylistRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Long Road Trip", updated.Name)

	got, err := svc.Get(playlist.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Long Road Trip", got.Name)

	require.NoError(t, svc.Delete(playlist.ID, user.ID))
	_, err = svc.Get(playlist.ID, user.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestPlaylistCreateRequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")

	_, err := svc.Create(user.ID, &CreatePlaylistRequest{})
	assert.Error(t, err)
}

func TestPlaylistOwnershipIsEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	owner := createConfirmedUser(t, db, "a@example.com", "a")
	other := createConfirmedUser(t, db, "b@example.com", "b")

	playlist := createPlaylist(t, svc, owner.ID, "Mine")

	_, err := svc.Get(playlist.ID, other.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	err = svc.Delete(playlist.ID, other.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	lists, err := svc.List(other.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestPlaylistAddAndRemoveSong(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")
	first := createSong(t, db, "Yesterday", "The Beatles")
	second := createSong(t, db, "Let It Be", "The Beatles")

	entry, action, err := svc.AddSong(playlist.ID, user.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, SongActionAdded, action)
	assert.Equal(t, 1, entry.Position)
	assert.Equal(t, "Yesterday", entry.Song.Title)

	entry2, action2, err := svc.AddSong(playlist.ID, user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, SongActionAdded, action2)
	assert.Equal(t, 2, entry2.Position)

	require.NoError(t, svc.RemoveSong(playlist.ID, user.ID, entry.ID))
	got, err := svc.Get(playlist.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, got.PlaylistSongs, 1)
	assert.Equal(t, second.ID, got.PlaylistSongs[0].SongID)

	err = svc.RemoveSong(playlist.ID, user.ID, entry.ID)
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestPlaylistAddSongPositions(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")

	for i, title := range []string{"One", "Two", "Three"} {
		song := createSong(t, db, title, "Artist")
		entry, action, err := svc.AddSong(playlist.ID, user.ID, song.ID)
		require.NoError(t, err)
		assert.Equal(t, SongActionAdded, action)
		assert.Equal(t, i+1, entry.Position)
	}

	got, err := svc.Get(playlist.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, got.PlaylistSongs, 3)
	assert.Equal(t, "One", got.PlaylistSongs[0].Song.Title)
	assert.Equal(t, "Three", got.PlaylistSongs[2].Song.Title)
}

func TestPlaylistAddSongDeduplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")
	song := createSong(t, db, "Yesterday", "The Beatles")

	entry, action, err := svc.AddSong(playlist.ID, user.ID, song.ID)
	require.NoError(t, err)
	assert.Equal(t, SongActionAdded, action)

	again, action, err := svc.AddSong(playlist.ID, user.ID, song.ID)
	require.NoError(t, err)
	assert.Equal(t, SongActionExisting, action)
	assert.Equal(t, entry.ID, again.ID)
}

func TestAddSongFromAICreatesCatalogEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")

	entry, action, err := svc.AddSongFromAI(playlist.ID, user.ID, &SongSuggestion{
		Title:    "Yesterday",
		Artist:   "The Beatles",
		Album:    "Help!",
		Duration: "2:05",
	})
	require.NoError(t, err)
	assert.Equal(t, SongActionAdded, action)
	assert.Equal(t, 1, entry.Position)
	assert.Equal(t, "Yesterday", entry.Song.Title)
	assert.Equal(t, 125, entry.Song.DurationSeconds)
	require.NotNil(t, entry.Song.Album)
	assert.Equal(t, "Help!", *entry.Song.Album)
}

func TestAddSongFromAIReusesExistingSong(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")
	song := createSong(t, db, "Yesterday", "The Beatles")

	entry, action, err := svc.AddSongFromAI(playlist.ID, user.ID, &SongSuggestion{
		Title:  "Yesterday",
		Artist: "The Beatles",
	})
	require.NoError(t, err)
	assert.Equal(t, SongActionAdded, action)
	assert.Equal(t, song.ID, entry.SongID)

	var count int64
	require.NoError(t, db.Model(&models.Song{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddSongFromAIExistingOnPlaylist(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")

	suggestion := &SongSuggestion{Title: "Yesterday", Artist: "The Beatles", Duration: "2:05"}

	_, action, err := svc.AddSongFromAI(playlist.ID, user.ID, suggestion)
	require.NoError(t, err)
	assert.Equal(t, SongActionAdded, action)

	_, action, err = svc.AddSongFromAI(playlist.ID, user.ID, suggestion)
	require.NoError(t, err)
	assert.Equal(t, SongActionExisting, action)
}

func TestAddSongFromAIRequiresTitleAndArtist(t *testing.T) {
	db := newTestDB(t)
	svc := NewPlaylistService(db)
	user := createConfirmedUser(t, db, "a@example.com", "a")
	playlist := createPlaylist(t, svc, user.ID, "Mix")

	_, _, err := svc.AddSongFromAI(playlist.ID, user.ID, &SongSuggestion{Artist: "The Beatles"})
	assert.Error(t, err)
	_, _, err = svc.AddSongFromAI(playlist.ID, user.ID, &SongSuggestion{Title: "Yesterday"})
	assert.Error(t, err)
}
