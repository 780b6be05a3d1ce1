package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	Poll    PollConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// BackendConfig holds settings for the remote GoGive API
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RedisConfig holds settings for the real-time pub/sub channel
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// PollConfig holds dashboard polling settings
type PollConfig struct {
	Interval time.Duration
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	if cfg.Server.WebAppURI, err = requireEnv("WEBAPP_URI"); err != nil {
		return nil, err
	}

	// Backend API configuration
	if cfg.Backend.BaseURL, err = requireEnv("GOGIVER_API_URL"); err != nil {
		return nil, err
	}
	backendTimeout := getEnvWithDefault("GOGIVER_API_TIMEOUT_SECONDS", "15")
	timeoutSeconds, err := strconv.Atoi(backendTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GOGIVER_API_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Backend.Timeout = time.Duration(timeoutSeconds) * time.Second

	// Redis configuration (real-time channel). Optional: the dashboard
	// degrades to polling-only when disabled.
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "false") == "true"
	if cfg.Redis.Enabled {
		if cfg.Redis.Addr, err = requireEnv("REDIS_ADDR"); err != nil {
			return nil, err
		}
		cfg.Redis.Password = getEnvWithDefault("REDIS_PASSWORD", "")
		redisDB := getEnvWithDefault("REDIS_DB", "0")
		cfg.Redis.DB, err = strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
		}
	}

	// Session configuration
	if cfg.Session.Secret, err = requireEnv("SESSION_SECRET"); err != nil {
		return nil, err
	}
	sessionTTL := getEnvWithDefault("SESSION_TTL_HOURS", "24")
	ttlHours, err := strconv.Atoi(sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SESSION_TTL_HOURS: %w", err)
	}
	cfg.Session.TTL = time.Duration(ttlHours) * time.Hour

	// Polling configuration
	pollInterval := getEnvWithDefault("POLL_INTERVAL_SECONDS", "30")
	intervalSeconds, err := strconv.Atoi(pollInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to parse POLL_INTERVAL_SECONDS: %w", err)
	}
	cfg.Poll.Interval = time.Duration(intervalSeconds) * time.Second

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
