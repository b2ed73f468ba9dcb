package database

import (
	"fmt"

	"gorm.io/gorm"

	"souqly_backend/internal/logger"
	"souqly_backend/internal/models"
)

// Migrate applies the schema. AutoMigrate covers tables and indexes declared
// in struct tags; gen_random_uuid needs pgcrypto on older postgres, so the
// extension is ensured first.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductLike{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("✅ Database migration completed")
	return nil
}
