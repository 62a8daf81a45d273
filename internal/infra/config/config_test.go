package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv populates the three mandatory variables; individual tests
// blank out the one under test.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", "practicum-token")
	t.Setenv("TELEGRAM_TOKEN", "telegram-token")
	t.Setenv("TELEGRAM_CHAT_ID", "123456789")

	// Keep the optional variables out of the ambient environment.
	t.Setenv("PRACTICUM_ENDPOINT", "")
	t.Setenv("CRON_SPEC_POLL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENVIRONMENT", "")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "practicum-token", cfg.PracticumToken)
	assert.Equal(t, "telegram-token", cfg.TelegramToken)
	assert.Equal(t, int64(123456789), cfg.TelegramChatID)
	assert.Empty(t, cfg.PracticumEndpoint)
	assert.Equal(t, "@every 10m", cfg.CronSpecPoll)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_MissingRequiredVariables(t *testing.T) {
	for _, name := range []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_InvalidChatID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}

func TestLoad_InvalidRequestTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PRACTICUM_ENDPOINT", "http://localhost:8080/api/")
	t.Setenv("CRON_SPEC_POLL", "@every 1m")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/", cfg.PracticumEndpoint)
	assert.Equal(t, "@every 1m", cfg.CronSpecPoll)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
}
