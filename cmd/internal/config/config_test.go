package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"GO_ENV", "PORT", "LOG_LEVEL", "STATIC_DIR", "BODY_LIMIT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PATH", "DB_MAX_OPEN_CONNS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, ":3000", cfg.ListenAddr())
	require.Equal(t, log.INFO, cfg.LogLevel)
	require.Equal(t, "public", cfg.StaticDir)
	require.Equal(t, "1M", cfg.BodyLimit)
	require.Equal(t, 15*time.Second, cfg.ReadTimeout)
	require.Equal(t, 15*time.Second, cfg.WriteTimeout)

	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Zero(t, cfg.Database.Port)
	require.Equal(t, "root", cfg.Database.User)
	require.Empty(t, cfg.Database.Password)
	require.Equal(t, "notes_db", cfg.Database.Name)
	require.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", " spaced ")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8081", cfg.ListenAddr())
	require.Equal(t, log.DEBUG, cfg.LogLevel)
	require.Equal(t, 2*time.Second, cfg.ReadTimeout)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db", cfg.Database.Host)
	require.Equal(t, 6543, cfg.Database.Port)
	require.Equal(t, " spaced ", cfg.Database.Password, "passwords are taken verbatim")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"LOG_LEVEL":          "loud",
		"DB_PORT":            "three",
		"DB_MAX_OPEN_CONNS":  "many",
		"HTTP_WRITE_TIMEOUT": "soon",
		"DB_DRIVER":          "oracle",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadEnvWithoutDotEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	require.NoError(t, LoadEnv(context.Background()))
}

func TestLoadEnvReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DB_NAME")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=from_dotenv\n"), 0o644))
	chdir(t, dir)

	require.NoError(t, LoadEnv(context.Background()))
	require.Equal(t, "from_dotenv", os.Getenv("DB_NAME"))
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
