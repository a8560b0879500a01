// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/mcp-starter/pkg/client"
)

// Lookup defaults
const (
	DefaultMaxAttemptsValue    = 3
	DefaultInitialDelayMsValue = 1000
	DefaultAttemptTimeoutMs    = 10000
)

// Config holds all configuration for the MCP server.
type Config struct {
	UsersAPIBaseURL   string        // USERS_API_BASE_URL, default "https://jsonplaceholder.typicode.com"
	UserAgent         string        // USERS_API_USER_AGENT, default "mcp-starter/1.0"
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms (30s)

	// Lookup retry policy
	MaxAttempts    int           // LOOKUP_MAX_ATTEMPTS, default 3
	InitialDelay   time.Duration // LOOKUP_INITIAL_DELAY_MS, default 1000ms
	MaxDelay       time.Duration // LOOKUP_MAX_DELAY_MS, default 0 (uncapped)
	Jitter         float64       // LOOKUP_JITTER, default 0
	AttemptTimeout time.Duration // LOOKUP_ATTEMPT_TIMEOUT_MS, default 10000ms

	UserCacheMaxItems int // USER_CACHE_MAX_ITEMS, default 0 (disabled)
	FetchWorkers      int // FETCH_WORKERS, default 4

	// Tool call rate limiting (0 = unlimited)
	ToolCallsPerSecond float64 // TOOL_CALLS_PER_SECOND
	ToolCallBurst      int     // TOOL_CALL_BURST, default 10

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		UsersAPIBaseURL:   getEnvString("USERS_API_BASE_URL", client.DefaultBaseURL),
		UserAgent:         getEnvString("USERS_API_USER_AGENT", client.DefaultUserAgent),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 30000),

		MaxAttempts:    getEnvInt("LOOKUP_MAX_ATTEMPTS", DefaultMaxAttemptsValue),
		InitialDelay:   getEnvDurationMs("LOOKUP_INITIAL_DELAY_MS", DefaultInitialDelayMsValue),
		MaxDelay:       getEnvDurationMs("LOOKUP_MAX_DELAY_MS", 0),
		Jitter:         getEnvFloat("LOOKUP_JITTER", 0),
		AttemptTimeout: getEnvDurationMs("LOOKUP_ATTEMPT_TIMEOUT_MS", DefaultAttemptTimeoutMs),

		UserCacheMaxItems: getEnvInt("USER_CACHE_MAX_ITEMS", 0),
		FetchWorkers:      getEnvInt("FETCH_WORKERS", 4),

		ToolCallsPerSecond: getEnvFloat("TOOL_CALLS_PER_SECOND", 0),
		ToolCallBurst:      getEnvInt("TOOL_CALL_BURST", 10),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
