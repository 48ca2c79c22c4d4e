package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "local", cfg.Broadcast.Backend)
	assert.Equal(t, 64, cfg.WS.SendBuffer)
	assert.Equal(t, 25*time.Second, cfg.WS.PingInterval)
	assert.Zero(t, cfg.Game.DiceSeed)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BROADCAST_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("WS_PING_INTERVAL", "5s")
	t.Setenv("DICE_SEED", "1234")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "redis", cfg.Broadcast.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 5*time.Second, cfg.WS.PingInterval)
	assert.Equal(t, int64(1234), cfg.Game.DiceSeed)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadFromEnv_HTTPAddrWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "log format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "backend", env: map[string]string{"BROADCAST_BACKEND": "kafka"}},
		{name: "send buffer", env: map[string]string{"WS_SEND_BUFFER": "0"}},
		{name: "rate limit", env: map[string]string{"WS_RATE_LIMIT": "-1"}},
		{name: "bad duration", env: map[string]string{"WS_PING_INTERVAL": "soon"}},
		{name: "bad int", env: map[string]string{"REDIS_DB": "zero"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}
