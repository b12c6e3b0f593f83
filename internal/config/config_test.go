package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("STORAGE_ROOT", "/var/lib/companyreg")
	os.Setenv("MAX_UPLOAD_MB", "25")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("STORAGE_ROOT")
		os.Unsetenv("MAX_UPLOAD_MB")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/var/lib/companyreg", cfg.Storage.Root)
	assert.Equal(t, 25, cfg.Storage.MaxUploadMB)
	assert.Equal(t, int64(25*1024*1024), cfg.Storage.MaxUploadBytes())
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("STORAGE_ROOT")
	os.Unsetenv("MAX_UPLOAD_MB")

	cfg := Load()

	assert.Equal(t, "storage", cfg.Storage.Root)
	assert.Equal(t, 10, cfg.Storage.MaxUploadMB)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxUploadBytes())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
