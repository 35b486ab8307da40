package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `env:"CLIQUE_PORT" envDefault:"8080"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `env:"CLIQUE_DB_PATH" envDefault:"clique.db"`
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	// JWTSecret has a development default; set it in production.
	JWTSecret string        `env:"CLIQUE_JWT_SECRET" envDefault:"clique-dev-secret-change-in-production"`
	TokenTTL  time.Duration `env:"CLIQUE_TOKEN_TTL" envDefault:"24h"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
