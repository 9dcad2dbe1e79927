package models

import (
	"time"
)

// Playlist represents the playlists table
// DB: playlists
type Playlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index:playlists_user_id_idx" json:"user_id"`
	Name        string    `gorm:"column:name;size:255;not null" json:"name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	PlaylistSongs []PlaylistSong `gorm:"foreignKey:PlaylistID" json:"playlist_songs,omitempty"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistSong joins playlists and songs with an ordering position
// DB: playlist_songs
type PlaylistSong struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"column:playlist_id;not null;uniqueIndex:playlist_songs_playlist_song_key,priority:1" json:"playlist_id"`
	SongID     uint      `gorm:"column:song_id;not null;uniqueIndex:playlist_songs_playlist_song_key,priority:2" json:"song_id"`
	Position   int       `gorm:"column:position;not null" json:"position"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	Playlist Playlist `gorm:"foreignKey:PlaylistID" json:"-"`
	Song     Song     `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

func (PlaylistSong) TableName() string {
	return "playlist_songs"
}
