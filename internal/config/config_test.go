package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "SQLITE_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"DEFAULT_SCORE_LIMIT", "MAX_PLAYERS", "STATS_WINDOW", "GOOD_ROUND_THRESHOLD", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

// unsetForTest removes key for the rest of the test; Setenv restores it afterwards
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	// An empty SQLITE_PATH disables the tier, so drop it entirely for defaults
	unsetForTest(t, "SQLITE_PATH")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "./dutch.db", cfg.SQLitePath)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 100, cfg.DefaultScoreLimit)
	assert.Equal(t, 10, cfg.MaxPlayers)
	assert.Equal(t, 3, cfg.StatsWindow)
	assert.Equal(t, 15, cfg.GoodRoundThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DEFAULT_SCORE_LIMIT", "150")
	t.Setenv("MAX_PLAYERS", "6")
	t.Setenv("STATS_WINDOW", "5")
	t.Setenv("GOOD_ROUND_THRESHOLD", "10")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Empty(t, cfg.SQLitePath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 150, cfg.DefaultScoreLimit)
	assert.Equal(t, 6, cfg.MaxPlayers)
	assert.Equal(t, 5, cfg.StatsWindow)
	assert.Equal(t, 10, cfg.GoodRoundThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"REDIS_DB", "one"},
		{"DEFAULT_SCORE_LIMIT", "0"},
		{"MAX_PLAYERS", "1"},
		{"STATS_WINDOW", "-3"},
		{"GOOD_ROUND_THRESHOLD", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
