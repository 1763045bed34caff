package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "./data", cfg.Storage.Badger.Path)
	assert.Equal(t, "@every 30s", cfg.Sync.PollSchedule)
	assert.Equal(t, "30s", cfg.Sync.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Sync.RequestTimeoutDuration())
	assert.Equal(t, "google", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Empty(t, cfg.AI.APIKey)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromFilesMergesInOrder(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first.toml")
	require.NoError(t, os.WriteFile(first, []byte(`
[server]
port = 9000
host = "0.0.0.0"

[ai]
provider = "openai"
model = "gpt-4o-mini"
`), 0644))

	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(second, []byte(`
[server]
port = 9100
`), 0644))

	cfg, err := LoadFromFiles(first, second)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "later file wins")
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "earlier value kept when not overridden")
	assert.Equal(t, "openai", cfg.AI.Provider)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WPSTUDIO_SERVER_PORT", "7777")
	t.Setenv("WPSTUDIO_AI_PROVIDER", "anthropic")
	t.Setenv("WPSTUDIO_SYNC_REQUEST_TIMEOUT", "45s")
	t.Setenv("WPSTUDIO_LOG_OUTPUT", "stdout, file")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, 45*time.Second, cfg.Sync.RequestTimeoutDuration())
	assert.Equal(t, []string{"stdout", "file"}, cfg.Logging.Output)
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := LoadFromFiles("../../deployments/wpstudio.toml")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Sync.RequestTimeoutDuration())
	assert.Equal(t, "google", cfg.AI.Provider)
}

func TestRequestTimeoutDurationFallback(t *testing.T) {
	sync := SyncConfig{RequestTimeout: "not a duration"}
	assert.Equal(t, 30*time.Second, sync.RequestTimeoutDuration())

	sync.RequestTimeout = ""
	assert.Equal(t, 30*time.Second, sync.RequestTimeoutDuration())

	sync.RequestTimeout = "90s"
	assert.Equal(t, 90*time.Second, sync.RequestTimeoutDuration())
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 8123, "127.0.0.1")
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 8123, cfg.Server.Port, "zero values leave config untouched")
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.AI.Provider = "watson"
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestIsProduction(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.False(t, cfg.IsProduction())

	cfg.Environment = "production"
	assert.True(t, cfg.IsProduction())

	cfg.Environment = " prod "
	assert.True(t, cfg.IsProduction())
}
