package db

import (
	"context"
	"fmt"
	"log/slog"

	"budget-server/entities"
)

// Migrate creates any missing tables, columns and constraints. It is safe
// to run on every start.
func Migrate(ctx context.Context, database Database, log *slog.Logger) error {
	log.Info("running database migrations")
	err := database.GetDB().WithContext(ctx).AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Transaction{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}
