// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, then checks the result with 'go-playground/validator'.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Badger) via constructors.
  - Local Overrides: A '.env' file in the working directory is read first when present.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Blacklist backends.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendBadger   = "badger"
)

// # Configuration Schema

// Config holds all runtime configuration for the todo API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080" validate:"required,numeric"`
	Environment string `env:"ENVIRONMENT" envDefault:"development" validate:"oneof=development production test"`
	Debug       bool   `env:"DEBUG_MODE" envDefault:"false"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	APIVersion  string `env:"API_VERSION" envDefault:"v1" validate:"required,alphanum"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required,url"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10" validate:"gt=0"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"2" validate:"gte=0,ltefield=DBMaxConns"`

	// Token signing
	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=16"`
	JWTExpiry int    `env:"JWT_EXPIRY" envDefault:"3600" validate:"gt=0"`

	// Token blacklist
	BlacklistBackend string        `env:"BLACKLIST_BACKEND" envDefault:"postgres" validate:"oneof=postgres redis badger"`
	RedisURL         string        `env:"REDIS_URL" validate:"required_if=BlacklistBackend redis"`
	RedisPoolSize    int           `env:"REDIS_POOL_SIZE" envDefault:"10" validate:"gt=0"`
	BadgerDir        string        `env:"BLACKLIST_BADGER_DIR" envDefault:"./data/blacklist" validate:"required_if=BlacklistBackend badger"`
	SweepInterval    time.Duration `env:"BLACKLIST_SWEEP_INTERVAL" envDefault:"1h" validate:"gt=0"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional '.env' file, then parses and validates the process
// environment into a [Config].
func Load() (*Config, error) {

	// Values already present in the environment win over the file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Semantic validation of the parsed values
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return cfg, nil
}

// # Derived Values

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// TokenTTL returns the JWT lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiry) * time.Second
}

// APIPrefix returns the versioned route prefix, e.g. "/api/v1".
func (c *Config) APIPrefix() string {
	return "/api/" + c.APIVersion
}

// SlogLevel maps LOG_LEVEL to a slog level. Debug mode always logs at debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AllowsOrigin reports whether a browser origin may call the API. With no
// configured origins, any origin is allowed in development only.
func (c *Config) AllowsOrigin(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return c.IsDevelopment()
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
