package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// SQLitePath is the primary store file, empty disables the tier
	SQLitePath string

	// RedisAddr enables the Redis tier and the history archive when set
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DefaultScoreLimit  int
	MaxPlayers         int
	StatsWindow        int
	GoodRoundThreshold int

	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:    getEnv("PORT", "8080"),
		SQLitePath:    lookupEnv("SQLITE_PATH", "./dutch.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	ints := []struct {
		key          string
		defaultValue int
		target       *int
	}{
		{"REDIS_DB", 0, &cfg.RedisDB},
		{"DEFAULT_SCORE_LIMIT", 100, &cfg.DefaultScoreLimit},
		{"MAX_PLAYERS", 10, &cfg.MaxPlayers},
		{"STATS_WINDOW", 3, &cfg.StatsWindow},
		{"GOOD_ROUND_THRESHOLD", 15, &cfg.GoodRoundThreshold},
	}
	for _, item := range ints {
		value, err := getEnvInt(item.key, item.defaultValue)
		if err != nil {
			return nil, err
		}
		*item.target = value
	}

	if cfg.DefaultScoreLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_SCORE_LIMIT must be positive, got %d", cfg.DefaultScoreLimit)
	}
	if cfg.MaxPlayers < 2 {
		return nil, fmt.Errorf("MAX_PLAYERS must be at least 2, got %d", cfg.MaxPlayers)
	}
	if cfg.StatsWindow <= 0 {
		return nil, fmt.Errorf("STATS_WINDOW must be positive, got %d", cfg.StatsWindow)
	}
	if cfg.GoodRoundThreshold <= 0 {
		return nil, fmt.Errorf("GOOD_ROUND_THRESHOLD must be positive, got %d", cfg.GoodRoundThreshold)
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv is getEnv for keys where an explicit empty value means off
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
