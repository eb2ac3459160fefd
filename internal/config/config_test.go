package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/recourse/intake/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "intake.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: memory\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8484", cfg.Listen)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Redis(t *testing.T) {
	path := writeConfig(t, `
listen: ":9000"
debounce: 500ms
storage:
  backend: redis
  redis:
    addr: "localhost:6379"
    db: 2
    ttl: 720h
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce.Std())
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, 720*time.Hour, cfg.Storage.Redis.TTL.Std())
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: dynamo\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dynamo")
}
