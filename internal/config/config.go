package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Auth     AuthConfig
	Cache    CacheConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// BackendConfig selects and configures the persistence backend.
// Driver is one of "rest" (hosted backend), "sqlite" (self-hosted file
// database) or "memory" (seeded demo backend, edits lost on restart).
type BackendConfig struct {
	Driver      string
	RESTBaseURL string
	RESTAPIKey  string
	SQLitePath  string
}

// AuthConfig configures the identity provider and session verification.
type AuthConfig struct {
	BaseURL       string
	APIKey        string
	SessionSecret string
}

// CacheConfig configures the local catalog snapshot used when the backend is
// unreachable.
type CacheConfig struct {
	Path string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Backend: BackendConfig{
			Driver:      getEnv("BACKEND_DRIVER", "memory"),
			RESTBaseURL: getEnv("BACKEND_URL", ""),
			RESTAPIKey:  getEnv("BACKEND_API_KEY", ""),
			SQLitePath:  getEnv("SQLITE_PATH", "skitchen.db"),
		},
		Auth: AuthConfig{
			BaseURL:       getEnv("AUTH_URL", ""),
			APIKey:        getEnv("AUTH_API_KEY", ""),
			SessionSecret: getEnv("SESSION_SECRET", "insecure-dev-secret"),
		},
		Cache: CacheConfig{
			Path: getEnv("CACHE_PATH", "menu_cache.json"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// The identity provider usually lives on the same host as the hosted
	// backend; default to it when only the backend URL is set.
	if cfg.Auth.BaseURL == "" {
		cfg.Auth.BaseURL = cfg.Backend.RESTBaseURL
	}
	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = cfg.Backend.RESTAPIKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Backend.Driver {
	case "rest":
		if c.Backend.RESTBaseURL == "" || c.Backend.RESTAPIKey == "" {
			return fmt.Errorf("BACKEND_URL and BACKEND_API_KEY are required with the rest driver")
		}
	case "sqlite":
		if c.Backend.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required with the sqlite driver")
		}
	case "memory":
	default:
		return fmt.Errorf("invalid backend driver: %s (must be rest, sqlite, or memory)", c.Backend.Driver)
	}

	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
