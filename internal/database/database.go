package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/nicketronix/promptpilot-backend/config"
	"github.com/nicketronix/promptpilot-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the relational backend selected by cfg.StorageDriver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("storage driver %q has no relational backend", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Unique violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users, prompts and prompt_feedback tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Prompt{}, &models.PromptFeedback{})
}
