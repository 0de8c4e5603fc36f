package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Web         WebConfig
	Database    DatabaseConfig
	Preferences PreferencesConfig
}

type WebConfig struct {
	Host           string   // defaults to 0.0.0.0
	Port           int      // defaults to 8080
	AllowedOrigins []string // CORS allow list on top of localhost, "*" allows any origin
	LogDevelopment bool     // human readable console logs instead of JSON
}

// Addr returns the listen address of the HTTP server.
func (c *WebConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type PreferencesConfig struct {
	// DefaultArchiveSize overrides the system default of download.archiveSize
	// in bytes. Zero keeps the built-in default.
	DefaultArchiveSize int64
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	return int(envInt64(key, int64(defaultVal)))
}

// envInt64 is envInt for values that may exceed 32 bits.
func envInt64(key string, defaultVal int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// envList splits a comma separated environment variable, dropping empty items.
func envList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() *Config {
	host := os.Getenv("WEB_HOST")
	if host == "" {
		host = "0.0.0.0"
	}

	return &Config{
		Web: WebConfig{
			Host:           host,
			Port:           envInt("WEB_PORT", 8080),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
			LogDevelopment: envBool("LOG_DEVELOPMENT"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Preferences: PreferencesConfig{
			DefaultArchiveSize: envInt64("PREFERENCES_DEFAULT_ARCHIVE_SIZE", 0),
		},
	}
}
