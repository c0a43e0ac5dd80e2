package database

import (
	"fmt"
	"time"

	"github.com/masum-diu/nishaan/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres. TranslateError lets repositories see
// gorm.ErrDuplicatedKey instead of driver-specific errors. Query logs go to
// log.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         NewLogger(log, logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("DB connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Variant{},
		&models.ProductImage{},
		&models.Banner{},
		&models.Profile{},
		&models.Order{},
	); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}
