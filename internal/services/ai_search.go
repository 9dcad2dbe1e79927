package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/kvstore"
	"github.com/Jean612/SoundScape/internal/logger"
	"github.com/Jean612/SoundScape/pkg/ai"
	"go.uber.org/zap"
)

const (
	minQueryLength = 2
	maxQueryLength = 100

	validationErrorMessage = "Query must be between 2 and 100 characters"
	rateLimitErrorMessage  = "Rate limit exceeded. Please try again later."
	fallbackErrorMessage   = "AI service temporarily unavailable. Please try again later."
)

// SearchParams carries one search request into the pipeline.
type SearchParams struct {
	Query     string
	UserID    uint
	Limit     int
	IPAddress string
}

// SearchResult is the single contract the orchestrator returns. Failures
// are structured, never errors: validation and rate limiting come back as
// flagged results and provider trouble as the uniform fallback shape.
type SearchResult struct {
	Success     bool             `json:"success"`
	Songs       []SongSuggestion `json:"songs"`
	Cached      bool             `json:"cached"`
	Query       string           `json:"query"`
	Timestamp   time.Time        `json:"timestamp"`
	Error       string           `json:"error,omitempty"`
	RateLimited bool             `json:"rate_limited,omitempty"`
	Fallback    bool             `json:"fallback,omitempty"`
}

// AISearchService coordinates rate limiting, validation, caching, the
// provider call, parsing and analytics for one search. Steps run strictly
// in sequence; nothing is retried automatically.
type AISearchService struct {
	limiter   *RateLimiter
	cache     *SearchCache
	provider  ai.Completer
	analytics *AnalyticsService

	defaultLimit int
	maxLimit     int
	log          *zap.SugaredLogger
}

func NewAISearchService(cfg *config.Config, store kvstore.Store, provider ai.Completer, analytics *AnalyticsService) *AISearchService {
	return &AISearchService{
		limiter:      NewRateLimiter(store, cfg.SearchRateLimit, time.Duration(cfg.SearchRateWindowMin)*time.Minute),
		cache:        NewSearchCache(store, time.Duration(cfg.SearchCacheExpiryMin)*time.Minute),
		provider:     provider,
		analytics:    analytics,
		defaultLimit: cfg.SearchDefaultLimit,
		maxLimit:     cfg.SearchMaxLimit,
		log:          logger.GetLogger("ai_search"),
	}
}

// SearchSongs runs the search state machine: rate check, validation, cache
// lookup, then on a miss the provider call, parse, cache write and
// analytics. The analytics attempt record is written before the provider
// call, so an attempt is logged even when the provider then fails.
func (s *AISearchService) SearchSongs(ctx context.Context, params SearchParams) SearchResult {
	limit := params.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	if !s.limiter.Allow(ctx, params.UserID) {
		return SearchResult{
			Success:     false,
			Songs:       []SongSuggestion{},
			Query:       params.Query,
			Error:       rateLimitErrorMessage,
			RateLimited: true,
		}
	}

	trimmed := strings.TrimSpace(params.Query)
	if length := utf8.RuneCountInString(trimmed); length < minQueryLength || length > maxQueryLength {
		return SearchResult{
			Success: false,
			Songs:   []SongSuggestion{},
			Query:   params.Query,
			Error:   validationErrorMessage,
		}
	}

	if songs, ok := s.cache.Get(ctx, params.Query); ok {
		return SearchResult{
			Success:   true,
			Songs:     truncate(songs, limit),
			Cached:    true,
			Query:     params.Query,
			Timestamp: time.Now(),
		}
	}

	// A rate-checked, validated cache miss counts as a search even if the
	// provider then fails, so the attempt record is written first.
	recordID := s.analytics.Record(ctx, params.UserID, trimmed, params.IPAddress)

	raw, err := s.provider.Complete(ctx, ai.BuildSearchPrompt(trimmed, limit))
	if err != nil {
		// Operators get the vendor error; callers only ever see the
		// uniform fallback message.
		s.log.Errorw("AI provider call failed", "query", trimmed, "error", err)
		return s.fallback(params.Query)
	}

	songs := ParseSongs(raw)

	if err := s.cache.Put(ctx, params.Query, songs); err != nil {
		s.log.Warnw("cache write failed", "query", trimmed, "error", err)
	}

	s.analytics.FinalizeResults(ctx, recordID, len(songs))

	return SearchResult{
		Success:   true,
		Songs:     truncate(songs, limit),
		Cached:    false,
		Query:     params.Query,
		Timestamp: time.Now(),
	}
}

func (s *AISearchService) fallback(query string) SearchResult {
	return SearchResult{
		Success:  false,
		Songs:    []SongSuggestion{},
		Query:    query,
		Error:    fallbackErrorMessage,
		Fallback: true,
	}
}

func truncate(songs []SongSuggestion, limit int) []SongSuggestion {
	if songs == nil {
		return []SongSuggestion{}
	}
	if len(songs) > limit {
		return songs[:limit]
	}
	return songs
}
