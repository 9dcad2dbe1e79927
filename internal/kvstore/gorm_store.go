package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/Jean612/SoundScape/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps entries in the kv_entries table. Expired rows are
// invisible to Read and swept by PurgeExpired.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Read(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, time.Now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (s *GormStore) Write(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
		}).
		Create(&entry).Error
}

// PurgeExpired deletes rows past their expiry and returns how many were removed.
func (s *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.KVEntry{})
	return result.RowsAffected, result.Error
}

// StartJanitor sweeps expired rows on a fixed interval until the context is
// cancelled.
func (s *GormStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.PurgeExpired(ctx)
		}
	}
}
