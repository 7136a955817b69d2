package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"notekeeper/cmd/internal/domain/database"
	"notekeeper/cmd/internal/infrastructure/aws/paramstore"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	defaultSSMPrefix = "/notekeeper/prod/"
	defaultRegion    = "us-east-2"
)

// AppConfig gathers everything the process needs to start.
type AppConfig struct {
	Port         string
	LogLevel     log.Lvl
	StaticDir    string
	BodyLimit    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Database     database.Config
}

// LoadEnv fills the process environment. Production reads AWS SSM Parameter Store,
// anything else reads an optional .env file.
func LoadEnv(ctx context.Context) error {
	if os.Getenv("GO_ENV") == "production" {
		client, err := paramstore.NewClient(ctx, envOr("AWS_REGION", defaultRegion))
		if err != nil {
			return err
		}

		count, err := paramstore.Export(ctx, client, envOr("SSM_PREFIX", defaultSSMPrefix))
		if err != nil {
			return err
		}
		log.Debugf("loaded %d prod environment variables", count)
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}
	return nil
}

// Load reads the configuration from the environment, falling back to
// local development defaults for anything unset.
func Load() (*AppConfig, error) {
	level, err := ParseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	readTimeout, err := envDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	writeTimeout, err := envDuration("HTTP_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	dbPort, err := envInt("DB_PORT", 0)
	if err != nil {
		return nil, err
	}

	maxOpen, err := envInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(envOr("DB_DRIVER", database.DriverMySQL))
	switch driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return &AppConfig{
		Port:         envOr("PORT", "3000"),
		LogLevel:     level,
		StaticDir:    envOr("STATIC_DIR", "public"),
		BodyLimit:    envOr("BODY_LIMIT", "1M"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Database: database.Config{
			Driver:       driver,
			Host:         envOr("DB_HOST", "localhost"),
			Port:         dbPort,
			User:         envOr("DB_USER", "root"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         envOr("DB_NAME", "notes_db"),
			Path:         envOr("DB_PATH", "notes.db"),
			MaxOpenConns: maxOpen,
		},
	}, nil
}

func (c *AppConfig) ListenAddr() string {
	return ":" + c.Port
}

func ParseLogLevel(raw string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off", "silent":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("unknown LOG_LEVEL %q", raw)
	}
}

func envOr(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return val, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return val, nil
}
