// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"w2meet-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite index backing the expiry scan (response_deadline <= now AND
	// notified = false), which runs every few seconds.
	if err := db.Exec("CREATE INDEX idx_events_deadline_notified ON events(response_deadline, notified)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events deadline scan: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX idx_events_public_created ON events(is_public, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for public events listing: %v\n", err)
	}

	return nil
}
