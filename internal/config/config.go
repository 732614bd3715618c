package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SQLitePath string

	HTTPAddr    string
	CastTimeout time.Duration
	LockTimeout time.Duration

	CredentialHasher string
	CredentialPepper string

	LogLevel slog.Level

	// Args holds the positional arguments left after flag parsing.
	Args []string
}

// Load reads .env (if present), then parses args with environment values as
// flag defaults, so flags win over the environment.
func Load(name string, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	var logLevel string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Driver, "driver", envOr("DATABASE_DRIVER", DriverSQLite), "Storage backend (sqlite or postgres)")
	fs.StringVar(&cfg.PostgresHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	fs.StringVar(&cfg.PostgresPort, "db-port", envOr("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.PostgresUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	fs.StringVar(&cfg.PostgresPassword, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	fs.StringVar(&cfg.PostgresDB, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", envOr("SQLITE_PATH", "voting.db"), "SQLite database file")
	fs.StringVar(&cfg.HTTPAddr, "addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.CredentialHasher, "hasher", envOr("CREDENTIAL_HASHER", "sha256"), "Credential hasher (sha256, hmac-sha256, argon2id)")
	fs.StringVar(&cfg.CredentialPepper, "pepper", os.Getenv("CREDENTIAL_PEPPER"), "Credential pepper (prefer env)")
	fs.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")

	castTimeout, err := envDuration("CAST_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	lockTimeout, err := envDuration("LOCK_TIMEOUT", 2*time.Second)
	if err != nil {
		return Config{}, err
	}
	fs.DurationVar(&cfg.CastTimeout, "cast-timeout", castTimeout, "Deadline for a ballot transaction")
	fs.DurationVar(&cfg.LockTimeout, "lock-timeout", lockTimeout, "How long a transaction waits on a row lock")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite path required (use -sqlite-path or SQLITE_PATH env)")
		}
	case DriverPostgres:
		if c.PostgresHost == "" || c.PostgresDB == "" {
			return errors.New("POSTGRES_HOST and POSTGRES_DB required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Driver)
	}

	if c.CastTimeout <= 0 {
		return errors.New("cast timeout must be positive")
	}
	if c.LockTimeout < 0 {
		return errors.New("lock timeout must not be negative")
	}
	return nil
}

// PostgresDSN builds the connection string the way the migration tool always has.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
