package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains all runtime settings, read from the environment
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string
	RedisURL    string

	FirebaseCredentialsPath string
	FirebaseAPIKey          string
	FirebaseAuthDomain      string
	FirebaseProjectID       string

	SeedMenus bool

	NavPrimarySize int
	NavStateTTL    time.Duration
	MenuCacheTTL   time.Duration
	WorkerInterval time.Duration
}

// IsProduction reports whether cookies should be marked secure
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and the environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only
func FromEnv() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase-service-account.json"),
		FirebaseAPIKey:          os.Getenv("FIREBASE_API_KEY"),
		FirebaseAuthDomain:      os.Getenv("FIREBASE_AUTH_DOMAIN"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),

		SeedMenus: getEnvBool("SEED_MENUS", true),

		NavPrimarySize: getEnvInt("NAV_PRIMARY_SIZE", 4),
		NavStateTTL:    time.Duration(getEnvInt("NAV_STATE_TTL_HOURS", 720)) * time.Hour,
		MenuCacheTTL:   time.Duration(getEnvInt("MENU_CACHE_TTL_MINUTES", 10)) * time.Minute,
		WorkerInterval: time.Duration(getEnvInt("WORKER_INTERVAL_MINUTES", 5)) * time.Minute,
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets a positive integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil || intVal <= 0 {
		slog.Warn("invalid integer setting, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return intVal
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean setting, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return b
}
