package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Jean612/SoundScape/internal/kvstore"
	"github.com/Jean612/SoundScape/internal/logger"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "rate_limit:ai_search:"

// RateLimiter bounds AI searches per user over a rolling window, counting
// in the shared key-value store. The read-then-write increment is not
// atomic: concurrent requests for the same user may both observe the same
// count, so enforcement is approximate (at least, not exactly, the limit).
type RateLimiter struct {
	store  kvstore.Store
	limit  int
	window time.Duration
	log    *zap.SugaredLogger
}

func NewRateLimiter(store kvstore.Store, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		log:    logger.GetLogger("rate_limiter"),
	}
}

// Allow reports whether userID may perform another search, incrementing
// the counter when it may. userID 0 (unauthenticated) is never limited.
// Store failures fail open so a broken counter store cannot take search
// down with it.
func (l *RateLimiter) Allow(ctx context.Context, userID uint) bool {
	if userID == 0 {
		return true
	}

	key := fmt.Sprintf("%s%d", rateLimitKeyPrefix, userID)

	raw, err := l.store.Read(ctx, key)
	if err != nil {
		l.log.Warnw("rate limit read failed, allowing request", "user_id", userID, "error", err)
		return true
	}

	count := 0
	if raw != nil {
		count, _ = strconv.Atoi(string(raw))
	}

	if count >= l.limit {
		return false
	}

	if err := l.store.Write(ctx, key, []byte(strconv.Itoa(count+1)), l.window); err != nil {
		l.log.Warnw("rate limit write failed", "user_id", userID, "error", err)
	}
	return true
}
