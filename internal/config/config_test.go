package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_Defaults(t *testing.T) {
	// Given: no file on disk
	t.Setenv("JWT_SECRET", "")
	path := filepath.Join(t.TempDir(), "missing.yml")

	// When
	cfg := MustLoad(path)

	// Then
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 600*time.Millisecond, cfg.Game.OpponentDelay)
	assert.Zero(t, cfg.Game.RandomSeed)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "tic-tac-toe-minimax", cfg.Telemetry.ServiceName)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestMustLoad_Environment(t *testing.T) {
	t.Setenv("OPPONENT_DELAY", "1s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_CONNSTRING", "redis:6379")

	cfg := MustLoad("")

	assert.Equal(t, time.Second, cfg.Game.OpponentDelay)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestMustLoad_File(t *testing.T) {
	// Given: a config.yml overriding a few keys
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
log-level: debug
http-addr: ":9090"
game:
  opponent-delay: 250ms
  random-seed: 7
telemetry:
  service-name: ttt-test
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// When
	cfg := MustLoad(path)

	// Then
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.OpponentDelay)
	assert.Equal(t, uint64(7), cfg.Game.RandomSeed)
	assert.Equal(t, "ttt-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestMustLoad_BadFilePanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("game: [not, a, map"), 0o600))

	assert.Panics(t, func() { MustLoad(path) })
}
