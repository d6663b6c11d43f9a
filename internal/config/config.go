// Package config loads and validates the service configuration from the
// process environment. Missing or malformed required settings fail fast;
// the process must not proceed to serve traffic without them.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads a .env file into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const defaultServerAddr = ":8080"

// Config is the root configuration for the service.
type Config struct {
	Database DatabaseConfig `koanf:"db" validate:"required"`
	Server   ServerConfig   `koanf:"server"`
	Auth     AuthConfig     `koanf:"auth"`
}

// DatabaseConfig holds the MySQL connection settings. All fields are
// required; there are no defaults.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Name     string `koanf:"name" validate:"required"`
}

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// AuthConfig holds the JWT signing secret and the email whose logins are
// issued admin tokens. Only the HTTP server requires a secret; the dbinit
// tool runs without one.
type AuthConfig struct {
	Secret     string `koanf:"secret"`
	AdminEmail string `koanf:"admin_email"`
}

// Load reads DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and the
// optional SERVER_ADDR, AUTH_SECRET and AUTH_ADMIN_EMAIL from the
// environment. Env var names map to koanf keys by lowercasing and splitting
// on the first underscore, e.g. DB_HOST -> db.host.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.Replace(s, "_", ".", 1))
	}), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}

	return cfg, nil
}
