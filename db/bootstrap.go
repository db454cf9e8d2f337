package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"budget-server/confs"

	"github.com/lib/pq"
)

// duplicateDatabase is the postgres error code for CREATE DATABASE on an
// existing name.
const duplicateDatabase = "42P04"

// EnsureDatabase creates the configured database through the server's
// maintenance database when it does not exist yet.
func EnsureDatabase(ctx context.Context, cfg confs.DatabaseConfig, log *slog.Logger) error {
	conn, err := sql.Open("postgres", cfg.MaintenanceDSN())
	if err != nil {
		return fmt.Errorf("open maintenance database: %w", err)
	}
	defer conn.Close()

	var exists bool
	err = conn.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w", cfg.Name, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE does not accept bind parameters
	_, err = conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(cfg.Name))
	if isDuplicateDatabase(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create database %q: %w", cfg.Name, err)
	}

	log.Info("database created", "dbname", cfg.Name)
	return nil
}

func isDuplicateDatabase(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == duplicateDatabase
}
