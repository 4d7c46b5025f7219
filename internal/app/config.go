package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppSecret   string // Required in prod: HMAC secret for bearer tokens
	AdminSecret string // Optional: shared secret for POST /admin/reset; empty disables it

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./saveenergy.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	FrontendOrigin      string        // Optional: allowed CORS origin (default: *)
	TokenTTL            time.Duration // Optional: bearer token lifetime (default: 24h)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AppSecret:           os.Getenv("APP_SECRET"),
		AdminSecret:         os.Getenv("ADMIN_SECRET"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "saveenergy.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		FrontendOrigin:      getEnvOrDefault("FRONTEND_ORIGIN", "*"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as hours (TOKEN_TTL=24).
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
