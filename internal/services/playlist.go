package services

import (
	"errors"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrSongNotFound     = errors.New("song not found")
)

// Actions reported by AddSongFromAI.
const (
	SongActionAdded    = "added"
	SongActionExisting = "existing"
)

type PlaylistService struct {
	db *database.DB
}

func NewPlaylistService(db *database.DB) *PlaylistService {
	return &PlaylistService{db: db}
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// List returns the user's playlists, newest first.
func (s *PlaylistService) List(userID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// Get returns one of the user's playlists with its songs in position order.
func (s *PlaylistService) Get(id, userID uint) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.
		Preload("PlaylistSongs", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_songs.position ASC")
		}).
		Preload("PlaylistSongs.Song").
		Where("id = ? AND user_id = ?", id, userID).
		First(&playlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *PlaylistService) Create(userID uint, req *CreatePlaylistRequest) (*models.Playlist, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	playlist := models.Playlist{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.Create(&playlist).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *PlaylistService) Update(id, userID uint, req *UpdatePlaylistRequest) (*models.Playlist, error) {
	playlist, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		playlist.Name = *req.Name
	}
	if req.Description != nil {
		playlist.Description = req.Description
	}

	if err := s.db.Save(playlist).Error; err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(id, userID uint) error {
	playlist, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	if err := s.db.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistSong{}).Error; err != nil {
		return err
	}
	return s.db.Delete(playlist).Error
}

// AddSong appends an existing catalog song to a playlist.
func (s *PlaylistService) AddSong(playlistID, userID, songID uint) (*models.PlaylistSong, string, error) {
	playlist, err := s.Get(playlistID, userID)
	if err != nil {
		return nil, "", err
	}

	var song models.Song
	if err := s.db.First(&song, songID).Error; err != nil {
		return nil, "", ErrSongNotFound
	}

	return s.appendSong(playlist.ID, &song)
}

// RemoveSong removes one playlist entry.
func (s *PlaylistService) RemoveSong(playlistID, userID, playlistSongID uint) error {
	playlist, err := s.Get(playlistID, userID)
	if err != nil {
		return err
	}

	result := s.db.
		Where("id = ? AND playlist_id = ?", playlistSongID, playlist.ID).
		Delete(&models.PlaylistSong{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// AddSongFromAI promotes an AI suggestion into the catalog and appends it
// to the playlist. An existing (title, artist) song is reused, and a song
// already on the playlist is reported as existing rather than duplicated.
func (s *PlaylistService) AddSongFromAI(playlistID, userID uint, suggestion *SongSuggestion) (*models.PlaylistSong, string, error) {
	if suggestion.Title == "" || suggestion.Artist == "" {
		return nil, "", errors.New("title and artist are required")
	}

	playlist, err := s.Get(playlistID, userID)
	if err != nil {
		return nil, "", err
	}

	song, err := s.findOrCreateSong(suggestion)
	if err != nil {
		return nil, "", err
	}

	return s.appendSong(playlist.ID, song)
}

func (s *PlaylistService) findOrCreateSong(suggestion *SongSuggestion) (*models.Song, error) {
	var song models.Song
	err := s.db.
		Where("title = ? AND artist = ?", suggestion.Title, suggestion.Artist).
		First(&song).Error
	if err == nil {
		return &song, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	song = models.Song{
		Title:           suggestion.Title,
		Artist:          suggestion.Artist,
		DurationSeconds: ParseDurationSeconds(suggestion.Duration),
	}
	if suggestion.Album != "" {
		album := suggestion.Album
		song.Album = &album
	}
	if err := s.db.Create(&song).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *PlaylistService) appendSong(playlistID uint, song *models.Song) (*models.PlaylistSong, string, error) {
	var existing models.PlaylistSong
	err := s.db.
		Preload("Song").
		Where("playlist_id = ? AND song_id = ?", playlistID, song.ID).
		First(&existing).Error
	if err == nil {
		return &existing, SongActionExisting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var maxPosition int
	s.db.Model(&models.PlaylistSong{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition)

	entry := models.PlaylistSong{
		PlaylistID: playlistID,
		SongID:     song.ID,
		Position:   maxPosition + 1,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, "", err
	}
	entry.Song = *song

	return &entry, SongActionAdded, nil
}
