package models

import (
	"time"
)

// SearchAnalytic records a single AI search attempt for analytics. A row
// is written when the attempt starts and its results_count filled in once
// the provider responds; nothing deletes rows.
// DB: search_analytics
type SearchAnalytic struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"column:user_id;not null;index:search_analytics_user_id_idx" json:"user_id"`
	Query        string    `gorm:"column:query;size:100;not null" json:"query"`
	SearchedAt   time.Time `gorm:"column:searched_at;not null;index:search_analytics_searched_at_idx" json:"searched_at"`
	IPAddress    *string   `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	ResultsCount int       `gorm:"column:results_count;not null;default:0" json:"results_count"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (SearchAnalytic) TableName() string {
	return "search_analytics"
}
