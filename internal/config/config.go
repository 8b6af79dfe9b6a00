// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DevSecretKey is the insecure placeholder used when SECRET_KEY is not
// set. It exists so local development works out of the box; startup logs
// a warning while it is in use.
const DevSecretKey = "dev-secret-change-this-in-production"

// Config holds all configuration parameters of the application.
type Config struct {
	// SecretKey signs session tokens and the flash cookie.
	SecretKey string `env:"SECRET_KEY" envDefault:"dev-secret-change-this-in-production"`

	// DatabaseDSN is the MySQL connection string for the user store.
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"auth_user:auth_password@tcp(localhost:3306)/auth_portal?charset=utf8mb4&parseTime=true&loc=Local"`

	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// SessionTTL bounds how long an issued session token stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// RunMigrations controls whether the schema is migrated on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`

	// HashConcurrency caps concurrent bcrypt operations. 0 means one per CPU.
	HashConcurrency int `env:"HASH_CONCURRENCY"`
}

// Load reads the configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// IsDevSecret reports whether the signing key is still the insecure
// development placeholder.
func (c *Config) IsDevSecret() bool {
	return c.SecretKey == DevSecretKey
}
