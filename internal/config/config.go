package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client needs to reach the backend.
type Config struct {
	ServerURL string
	WSURL     string

	// Credentials for non-interactive login. Leave empty to browse
	// anonymously.
	Email    string
	Password string

	PollInterval   time.Duration
	ReconnectDelay time.Duration
	HTTPTimeout    time.Duration
}

func Load() *Config {
	// A missing .env is fine; env vars and defaults cover everything.
	_ = godotenv.Load()

	return &Config{
		ServerURL:      getEnv("RESOURCIFY_SERVER_URL", "http://localhost:8084"),
		WSURL:          getEnv("RESOURCIFY_WS_URL", "ws://localhost:8084/ws"),
		Email:          getEnv("RESOURCIFY_EMAIL", ""),
		Password:       getEnv("RESOURCIFY_PASSWORD", ""),
		PollInterval:   getDuration("RESOURCIFY_POLL_INTERVAL", 10*time.Second),
		ReconnectDelay: getDuration("RESOURCIFY_RECONNECT_DELAY", 5*time.Second),
		HTTPTimeout:    getDuration("RESOURCIFY_HTTP_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return fallback
}
