package database

import (
	"log"
	"time"

	"github.com/Jean612/SoundScape/internal/config"
	"github.com/Jean612/SoundScape/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

func Connect(cfg *config.Config) (*DB, error) {
	logLevel := logger.Silent
	if cfg.ServerEnv == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	// Register metrics plugin for Prometheus
	if err := db.Use(&MetricsPlugin{}); err != nil {
		log.Printf("Failed to register metrics plugin: %v", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return &DB{db}, nil
}

// Migrate runs AutoMigrate for all models
func Migrate(db *DB) error {
	return db.AutoMigrate(
		// User domain
		&models.User{},

		// Library domain
		&models.Song{},
		&models.Playlist{},
		&models.PlaylistSong{},

		// AI search domain
		&models.SearchAnalytic{},
		&models.KVEntry{},
	)
}
