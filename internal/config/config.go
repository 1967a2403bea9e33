package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the API process needs from the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	MigrationsDir string
	LogLevel      string
}

// Load reads .env (if present) and assembles the configuration.
// DATABASE_URL is the only hard requirement.
func Load() (*Config, error) {
	// Missing .env is fine in containerized deploys where vars come from the runtime.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("APP_PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
