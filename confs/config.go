package confs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	GinMode         string        `mapstructure:"gin_mode"`
	AllowedOrigins  string        `mapstructure:"allowed_origins"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	URL          string `mapstructure:"url"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	SQLitePath   string `mapstructure:"sqlite_path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// binding maps a config key to its environment variable and default.
type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"server.host", "HOST", "0.0.0.0"},
	{"server.port", "PORT", "3000"},
	{"server.gin_mode", "GIN_MODE", "release"},
	{"server.allowed_origins", "CORS_ALLOWED_ORIGINS", "*"},
	{"server.static_dir", "STATIC_DIR", "public"},
	{"server.shutdown_timeout", "SHUTDOWN_TIMEOUT", "30s"},

	{"database.driver", "DB_DRIVER", DriverPostgres},
	{"database.url", "DB_URL", ""},
	{"database.host", "DB_HOST", "localhost"},
	{"database.port", "DB_PORT", "5432"},
	{"database.user", "DB_USER", ""},
	{"database.password", "DB_PASSWORD", ""},
	{"database.name", "DB_NAME", "budget_tracker"},
	{"database.sslmode", "DB_SSLMODE", ""},
	{"database.sqlite_path", "DB_SQLITE_PATH", "data/budget_tracker.db"},
	{"database.max_open_conns", "DB_MAX_OPEN_CONNS", 10},
	{"database.max_idle_conns", "DB_MAX_IDLE_CONNS", 5},
	{"database.log_level", "DB_LOG_LEVEL", "warn"},

	{"log.level", "LOG_LEVEL", "info"},
	{"log.format", "LOG_FORMAT", "text"},
}

// LoadConfig loads environment variables from a .env file if present
// and decodes the environment into a Config.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not load .env", "error", err)
		}
	}

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s': must be debug, release or test", c.Server.GinMode))
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Port == "" || c.Database.User == "" || c.Database.Password == "" || c.Database.Name == "") {
			problems = append(problems, "missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			problems = append(problems, "DB_SQLITE_PATH cannot be empty when DB_DRIVER=sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.Database.Driver, DriverPostgres, DriverSQLite))
	}

	if c.Database.MaxOpenConns < 1 {
		problems = append(problems, "DB_MAX_OPEN_CONNS must be at least 1")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.Log.Format))
	}

	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return errors.New("configuration errors: " + strings.Join(problems, "; "))
	}
	return nil
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Origins returns the CORS allow list. A nil result means all origins.
func (s ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return nil
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// UsesURL reports whether a full connection URL was supplied.
func (d DatabaseConfig) UsesURL() bool {
	return d.URL != ""
}

// DSN returns the postgres connection string for the target database.
func (d DatabaseConfig) DSN() string {
	if d.UsesURL() {
		dsn := d.URL
		// Hosted databases expect TLS unless told otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn
	}
	return d.dsnFor(d.Name)
}

// MaintenanceDSN points at the server's default database, used to create
// the target database before connecting to it.
func (d DatabaseConfig) MaintenanceDSN() string {
	return d.dsnFor("postgres")
}

func (d DatabaseConfig) sslMode() string {
	if d.SSLMode != "" {
		return d.SSLMode
	}
	if d.Host == "localhost" || d.Host == "127.0.0.1" {
		return "disable"
	}
	return "require"
}

func (d DatabaseConfig) dsnFor(dbName string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, dbName, d.Port, d.sslMode())
}
