// Package config loads the server configuration from .env files and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DATABASE_CLIENT.
const (
	ClientSQLite   = "sqlite"
	ClientPostgres = "pg"
)

// Config holds the application configuration.
type Config struct {
	Port            string
	DatabaseClient  string
	DatabaseURL     string
	SessionTTL      time.Duration
	AllowedOrigins  []string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// Default values
const (
	defaultPort            = "3333"
	defaultSQLitePath      = "./data/diet.db"
	defaultSessionTTL      = 7 * 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

// Load reads configuration from a .env file in the working directory, if any,
// and then from environment variables.
func Load() (*Config, error) {
	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}

	cfg := &Config{
		Port:            getEnvString("PORT", defaultPort),
		DatabaseClient:  getEnvString("DATABASE_CLIENT", ClientSQLite),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SessionTTL:      getEnvDuration("SESSION_TTL", defaultSessionTTL),
		AllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	switch cfg.DatabaseClient {
	case ClientSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLitePath
		}
	case ClientPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DATABASE_CLIENT=%s", ClientPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_CLIENT %q (want %q or %q)",
			cfg.DatabaseClient, ClientSQLite, ClientPostgres)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "168h", "30s", or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}
