package models

import (
	"time"
)

// KVEntry backs the shared expiring key-value store used by the AI search
// cache and the per-user rate limit counters. Entries past ExpiresAt are
// treated as absent and swept by a background janitor.
// DB: kv_entries
type KVEntry struct {
	Key       string    `gorm:"column:key;size:255;primaryKey" json:"key"`
	Value     []byte    `gorm:"column:value;type:bytea;not null" json:"value"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index:kv_entries_expires_at_idx" json:"expires_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
