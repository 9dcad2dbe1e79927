package services

import (
	"context"
	"time"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/Jean612/SoundScape/internal/logger"
	"github.com/Jean612/SoundScape/internal/models"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	db  *database.DB
	log *zap.SugaredLogger
}

func NewAnalyticsService(db *database.DB) *AnalyticsService {
	return &AnalyticsService{
		db:  db,
		log: logger.GetLogger("analytics"),
	}
}

// Record appends one search attempt. A write failure is logged and reported
// to the caller as ID 0; it must never fail the surrounding search.
func (s *AnalyticsService) Record(ctx context.Context, userID uint, query, ipAddress string) uint {
	if userID == 0 {
		return 0
	}

	record := models.SearchAnalytic{
		UserID:     userID,
		Query:      query,
		SearchedAt: time.Now(),
	}
	if ipAddress != "" {
		record.IPAddress = &ipAddress
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.log.Errorw("failed to record search analytics", "user_id", userID, "error", err)
		return 0
	}
	return record.ID
}

// FinalizeResults fills in the result count on an attempt record once the
// provider call completed. Best effort, same as Record.
func (s *AnalyticsService) FinalizeResults(ctx context.Context, recordID uint, resultsCount int) {
	if recordID == 0 {
		return
	}
	err := s.db.WithContext(ctx).
		Model(&models.SearchAnalytic{}).
		Where("id = ?", recordID).
		Update("results_count", resultsCount).Error
	if err != nil {
		s.log.Errorw("failed to finalize search analytics", "record_id", recordID, "error", err)
	}
}

// TrendingQuery is one entry of the trending aggregation.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Trending returns the most frequent exact query texts within the trailing
// window, most frequent first.
func (s *AnalyticsService) Trending(ctx context.Context, limit, windowHours int) ([]TrendingQuery, error) {
	if limit <= 0 {
		limit = 10
	}
	if windowHours <= 0 {
		windowHours = 24
	}

	windowStart := time.Now().Add(-time.Duration(windowHours) * time.Hour)

	var rows []TrendingQuery
	err := s.db.WithContext(ctx).
		Model(&models.SearchAnalytic{}).
		Select("query, COUNT(*) AS count").
		Where("searched_at >= ?", windowStart).
		Group("query").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// HistoryEntry is one row of a user's search history.
type HistoryEntry struct {
	ID           uint      `json:"id"`
	Query        string    `json:"query"`
	SearchedAt   time.Time `json:"searched_at"`
	ResultsCount int       `json:"results_count"`
}

type HistoryPage struct {
	Searches   []HistoryEntry `json:"searches"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalCount int64          `json:"total_count"`
}

const maxHistoryPerPage = 100

// History returns a reverse-chronological page of the user's own records.
func (s *AnalyticsService) History(ctx context.Context, userID uint, page, perPage int) (*HistoryPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > maxHistoryPerPage {
		perPage = maxHistoryPerPage
	}

	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.SearchAnalytic{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	var records []models.SearchAnalytic
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("searched_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, HistoryEntry{
			ID:           r.ID,
			Query:        r.Query,
			SearchedAt:   r.SearchedAt,
			ResultsCount: r.ResultsCount,
		})
	}

	return &HistoryPage{
		Searches:   entries,
		Page:       page,
		PerPage:    perPage,
		TotalCount: total,
	}, nil
}
