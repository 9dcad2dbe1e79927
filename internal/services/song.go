package services

import (
	"errors"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/models"
	"gorm.io/gorm"
)

type SongService struct {
	db *database.DB
}

func NewSongService(db *database.DB) *SongService {
	return &SongService{db: db}
}

type SongFilter struct {
	Page   int
	Limit  int
	Query  string // matches title or artist
	Artist string
}

type SongListResponse struct {
	Items []models.Song `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type CreateSongRequest struct {
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Album           *string `json:"album,omitempty"`
	DurationSeconds int     `json:"duration_seconds"`
	SpotifyID       *string `json:"spotify_id,omitempty"`
	YoutubeID       *string `json:"youtube_id,omitempty"`
}

// List retrieves catalog songs with filtering and pagination.
func (s *SongService) List(filter *SongFilter) (*SongListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	query := s.db.Model(&models.Song{})

	if filter.Query != "" {
		term := "%" + filter.Query + "%"
		query = query.Where("title LIKE ? OR artist LIKE ?", term, term)
	}
	if filter.Artist != "" {
		query = query.Where("artist = ?", filter.Artist)
	}

	var total int64
	query.Count(&total)

	var songs []models.Song
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&songs).Error
	if err != nil {
		return nil, err
	}

	return &SongListResponse{
		Items: songs,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *SongService) GetByID(id uint) (*models.Song, error) {
	var song models.Song
	err := s.db.First(&song, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *SongService) Create(req *CreateSongRequest) (*models.Song, error) {
	if req.Title == "" || req.Artist == "" {
		return nil, errors.New("title and artist are required")
	}
	if req.DurationSeconds <= 0 {
		return nil, errors.New("duration_seconds must be greater than 0")
	}

	song := models.Song{
		Title:           req.Title,
		Artist:          req.Artist,
		Album:           req.Album,
		DurationSeconds: req.DurationSeconds,
		SpotifyID:       req.SpotifyID,
		YoutubeID:       req.YoutubeID,
	}
	if err := s.db.Create(&song).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *SongService) Update(id uint, req *CreateSongRequest) (*models.Song, error) {
	song, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		song.Title = req.Title
	}
	if req.Artist != "" {
		song.Artist = req.Artist
	}
	if req.Album != nil {
		song.Album = req.Album
	}
	if req.DurationSeconds > 0 {
		song.DurationSeconds = req.DurationSeconds
	}
	if req.SpotifyID != nil {
		song.SpotifyID = req.SpotifyID
	}
	if req.YoutubeID != nil {
		song.YoutubeID = req.YoutubeID
	}

	if err := s.db.Save(song).Error; err != nil {
		return nil, err
	}
	return song, nil
}

func (s *SongService) Delete(id uint) error {
	song, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Where("song_id = ?", song.ID).Delete(&models.PlaylistSong{}).Error; err != nil {
		return err
	}
	return s.db.Delete(song).Error
}
