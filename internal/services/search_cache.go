package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/Jean612/SoundScape/internal/kvstore"
	"github.com/Jean612/SoundScape/internal/logger"
	"go.uber.org/zap"
)

const searchCacheKeyPrefix = "ai_search:"

// NormalizeQuery lowercases and trims query text. Two queries with the
// same normalized form share one cache entry regardless of user or limit.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// SearchCache stores parsed song lists keyed by a hash of the normalized
// query. Entries expire by TTL only; nothing invalidates them explicitly.
type SearchCache struct {
	store kvstore.Store
	ttl   time.Duration
	log   *zap.SugaredLogger
}

func NewSearchCache(store kvstore.Store, ttl time.Duration) *SearchCache {
	return &SearchCache{
		store: store,
		ttl:   ttl,
		log:   logger.GetLogger("search_cache"),
	}
}

func (c *SearchCache) key(query string) string {
	sum := md5.Sum([]byte(NormalizeQuery(query)))
	return searchCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached song list for a query, if present and fresh.
func (c *SearchCache) Get(ctx context.Context, query string) ([]SongSuggestion, bool) {
	raw, err := c.store.Read(ctx, c.key(query))
	if err != nil {
		c.log.Warnw("cache read failed", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	var songs []SongSuggestion
	if err := json.Unmarshal(raw, &songs); err != nil {
		c.log.Warnw("cache entry corrupted, ignoring", "error", err)
		return nil, false
	}
	return songs, true
}

// Put stores a complete parsed song list. Callers only write after a
// successful parse; partial results are never cached.
func (c *SearchCache) Put(ctx context.Context, query string, songs []SongSuggestion) error {
	raw, err := json.Marshal(songs)
	if err != nil {
		return err
	}
	return c.store.Write(ctx, c.key(query), raw, c.ttl)
}
