package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
chat:
  mode: single
  reply_delay: 50ms
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "single", cfg.Chat.Mode)
	assert.Equal(t, 50*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, time.Second, cfg.Analytics.Delay)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "user-1", cfg.Profile.DefaultUserID)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chat:\n  mode: chunks\n"), 0o600))

	t.Setenv("CHAT_MODE", "single")
	t.Setenv("PORT", "4100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "single", cfg.Chat.Mode)
	assert.Equal(t, 4100, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
