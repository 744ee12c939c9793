package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alisoliman/recipe-app-api/models"
	"gorm.io/gorm"
)

// Models lists every table managed by Migrate, parents first
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	}
}

// Migrate migrates the database schema
func Migrate(ctx context.Context, db *gorm.DB) error {
	slog.Info("migrating database schema")
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database schema migrated")
	return nil
}
