package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"budget-server/confs"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured store, creating the postgres database
// first when discrete connection parameters are used.
func Connect(ctx context.Context, cfg confs.DatabaseConfig, log *slog.Logger) (Database, error) {
	switch cfg.Driver {
	case confs.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		log.Info("connecting to sqlite database", "path", cfg.SQLitePath)
		return OpenSQLite(cfg.SQLitePath, cfg, log)
	case confs.DriverPostgres:
		return connectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func connectPostgres(ctx context.Context, cfg confs.DatabaseConfig, log *slog.Logger) (Database, error) {
	if cfg.UsesURL() {
		log.Info("connecting to database using DB_URL")
	} else {
		if err := EnsureDatabase(ctx, cfg, log); err != nil {
			return nil, err
		}
		log.Info("connecting to database using individual parameters", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Name)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig(cfg, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := configurePool(db, cfg.MaxOpenConns, cfg.MaxIdleConns); err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established", "max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns)
	return &GormDatabase{DB: db}, nil
}

// OpenSQLite opens a SQLite database at dsn with foreign keys enforced.
// dsn may be a file path or a "file:" URI such as an in-memory database.
func OpenSQLite(dsn string, cfg confs.DatabaseConfig, log *slog.Logger) (Database, error) {
	db, err := gorm.Open(sqlite.Open(sqliteDSN(dsn)), gormConfig(cfg, log))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := configurePool(db, cfg.MaxOpenConns, cfg.MaxIdleConns); err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if !strings.Contains(dsn, "mode=memory") {
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA busy_timeout = 5000;")
	}

	return &GormDatabase{DB: db}, nil
}

// sqliteDSN turns foreign key enforcement on for every pooled connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func configurePool(db *gorm.DB, maxOpen, maxIdle int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	sqlDB.SetConnMaxLifetime(0)
	return nil
}

func gormConfig(cfg confs.DatabaseConfig, log *slog.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:         newGormLogger(log, cfg.LogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// newGormLogger routes gorm's statement log through slog.
func newGormLogger(log *slog.Logger, level string) logger.Interface {
	var gormLevel logger.LogLevel
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "silent":
		gormLevel = logger.Silent
	case "error":
		gormLevel, slogLevel = logger.Error, slog.LevelError
	case "info", "debug":
		gormLevel, slogLevel = logger.Info, slog.LevelDebug
	default:
		gormLevel, slogLevel = logger.Warn, slog.LevelWarn
	}

	return logger.New(slog.NewLogLogger(log.Handler(), slogLevel), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
