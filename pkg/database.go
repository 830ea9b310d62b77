package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edusync-platform/school-service/internal/config"
	"github.com/edusync-platform/school-service/internal/models"
)

// InitDatabase opens the PostgreSQL connection and migrates the schema. The
// composite unique indexes on courses and grades are part of the model tags,
// so concurrent duplicate creates fail at the constraint rather than racing.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Environment == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Institution{},
		&models.Course{},
		&models.Teacher{},
		&models.Student{},
		&models.Grade{},
		&models.News{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
