package persistence

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the backing postgres database.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all persisted records.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&taskRecord{},
		&notificationRecord{},
		&profileRecord{},
	)
}
