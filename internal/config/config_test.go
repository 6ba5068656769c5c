package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.ServerAddr)
	assert.Equal(t, "http://localhost:8000", cfg.AnswerConnectorCfg.Url)
	assert.Equal(t, "/api/query", cfg.AnswerConnectorCfg.QueryEndpoint)
	assert.Equal(t, "/health", cfg.AnswerConnectorCfg.HealthEndpoint)
	assert.Equal(t, "http://localhost:5000", cfg.ClientCfg.RelayURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, uint(3), cfg.TelegramCfg.SendRetry.Attempts)
	assert.Equal(t, "test", cfg.Environment)
	assert.False(t, cfg.EnableMocks)

	assert.Zero(t, cfg.RequestTimeout)
	assert.Zero(t, cfg.AnswerConnectorCfg.RequestTimeout)
	assert.Zero(t, cfg.AnswerConnectorCfg.ResponseHeaderTimeout)
}

func TestLoadTimeouts(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "0s")
	t.Setenv("UPSTREAM_TIMEOUT", "0s")

	cfg, err := Load("test")
	require.NoError(t, err)
	assert.Zero(t, cfg.RequestTimeout)

	t.Setenv("SERVER_REQUEST_TIMEOUT", "-1s")
	_, err = Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_REQUEST_TIMEOUT")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("UPSTREAM_SERVICE_URL", "http://rag:8000")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://example.org")
	t.Setenv("ENABLE_MOCKS", "true")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "http://rag:8000", cfg.AnswerConnectorCfg.Url)
	assert.Equal(t, 5*time.Second, cfg.AnswerConnectorCfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://example.org"}, cfg.AllowedOrigins)
	assert.True(t, cfg.EnableMocks)
}

func TestLoadRejectsBadUpstreamURL(t *testing.T) {
	t.Setenv("UPSTREAM_SERVICE_URL", "not a url")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_SERVICE_URL")
}

func TestValidateTelegram(t *testing.T) {
	cfg, err := Load("test")
	require.NoError(t, err)

	require.Error(t, cfg.TelegramCfg.ValidateTelegram())

	cfg.TelegramCfg.BotToken = "123:abc"
	require.NoError(t, cfg.TelegramCfg.ValidateTelegram())

	cfg.TelegramCfg.ShutdownTimeout = 0
	require.Error(t, cfg.TelegramCfg.ValidateTelegram())
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
