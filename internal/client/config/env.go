package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvBaseURL        = "CAREERCOACH_API_URL"
	EnvRealtimePath   = "CAREERCOACH_WS_PATH"
	EnvReconnectDelay = "CAREERCOACH_RECONNECT_DELAY"
	EnvStoragePath    = "CAREERCOACH_DB"
	EnvLogLevel       = "CAREERCOACH_LOG_LEVEL"
)

// parseEnv overlays cfg with environment variables. A .env file (or the one
// named by -e/-env) is loaded first; variables already set in the process
// environment win over the file. A missing file is not an error.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	cfg.BaseURL = getenv(EnvBaseURL, cfg.BaseURL)
	cfg.RealtimePath = getenv(EnvRealtimePath, cfg.RealtimePath)
	cfg.ReconnectDelay = getenvDuration(EnvReconnectDelay, cfg.ReconnectDelay)
	cfg.StoragePath = getenv(EnvStoragePath, cfg.StoragePath)
	cfg.LogLevel = getenv(EnvLogLevel, cfg.LogLevel)
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getenvDuration accepts "5s"-style values or a bare number of seconds.
func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(val); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(val); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
