package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AdminJWTSecret string // Required: HS256 secret verifying admin bearer tokens
	Issuer         string // Optional: expected issuer claim on admin tokens (default: clientcred-admin)

	DatabaseFile string // Optional: path to SQLite database file (default: ./clientcred.db)
	PepperFile   string // Optional: path to file containing pepper for secret hashing (default: ./pepper)
	MaxVersions  int    // Optional: live credential versions per base client (default: 3)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AdminJWTSecret: os.Getenv("CLIENTCRED_ADMIN_JWT_SECRET"),
		Issuer:         getEnvOrDefault("CLIENTCRED_ISSUER", "clientcred-admin"),
		DatabaseFile:   getEnvOrDefault("CLIENTCRED_DATABASE_FILE", "clientcred.db"),
		PepperFile:     getEnvOrDefault("CLIENTCRED_PEPPER_FILE", "pepper"),
		MaxVersions:    getEnvIntOrDefault("CLIENTCRED_MAX_VERSIONS", 0),

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

	// Plain integers are read as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
