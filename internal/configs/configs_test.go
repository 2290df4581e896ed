package configs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chathub/internal/configs"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "DEFAULT_ROOM", "MAX_PAYLOAD_BYTES"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "chat1", cfg.DefaultRoom)
	assert.Equal(t, int64(configs.DefaultMaxPayloadBytes), cfg.MaxPayloadBytes)
}

func TestLoadConfigParsesOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfigRejectsInvalidPort(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "not-a-number")
	_, err := configs.LoadConfig()
	assert.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = configs.LoadConfig()
	assert.Error(t, err, "privileged ports are rejected")
}

func TestLoadConfigRejectsInvalidPayloadLimit(t *testing.T) {
	clearEnv(t)

	t.Setenv("MAX_PAYLOAD_BYTES", "zero")
	_, err := configs.LoadConfig()
	assert.Error(t, err)

	t.Setenv("MAX_PAYLOAD_BYTES", "-1")
	_, err = configs.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigCustomHubSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_ROOM", "lobby")
	t.Setenv("MAX_PAYLOAD_BYTES", "1048576")

	cfg, err := configs.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "lobby", cfg.DefaultRoom)
	assert.Equal(t, int64(1048576), cfg.MaxPayloadBytes)
}
