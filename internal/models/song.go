package models

import (
	"time"
)

// Song represents the songs table
// DB: songs
type Song struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"column:title;size:255;not null;index:songs_title_artist_idx,priority:1" json:"title"`
	Artist          string    `gorm:"column:artist;size:255;not null;index:songs_title_artist_idx,priority:2" json:"artist"`
	Album           *string   `gorm:"column:album;size:255" json:"album,omitempty"`
	DurationSeconds int       `gorm:"column:duration_seconds;not null" json:"duration_seconds"`
	SpotifyID       *string   `gorm:"column:spotify_id;size:100" json:"spotify_id,omitempty"`
	YoutubeID       *string   `gorm:"column:youtube_id;size:100" json:"youtube_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Song) TableName() string {
	return "songs"
}
