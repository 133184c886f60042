package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the gateway's process configuration, loaded from the
// environment at startup. Missing identity credentials or store coordinates
// are startup failures, never runtime ones.
type Config struct {
	Host string `env:"GATEWAY_HOST"`
	Port int    `env:"GATEWAY_PORT" envDefault:"8080"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"redis"`
	RedisURL    string `env:"REDIS_URL"`

	// Identity provider credential material (base64 ed25519 public key)
	AuthIssuer    string `env:"GATEWAY_AUTH_ISSUER"`
	AuthAudience  string `env:"GATEWAY_AUTH_AUDIENCE"`
	AuthPublicKey string `env:"GATEWAY_AUTH_PUBLIC_KEY"`

	VerifyTimeout  time.Duration `env:"GATEWAY_VERIFY_TIMEOUT" envDefault:"10s"`
	HandlerTimeout time.Duration `env:"GATEWAY_HANDLER_TIMEOUT" envDefault:"30s"`
}

// Load parses and validates configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required startup configuration is present
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", c.StorageType, StorageTypeMemory, StorageTypeRedis)
	}

	if c.AuthPublicKey == "" {
		return errors.New("GATEWAY_AUTH_PUBLIC_KEY is required")
	}
	if c.AuthIssuer == "" {
		return errors.New("GATEWAY_AUTH_ISSUER is required")
	}
	if c.AuthAudience == "" {
		return errors.New("GATEWAY_AUTH_AUDIENCE is required")
	}

	return nil
}
