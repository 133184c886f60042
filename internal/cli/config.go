package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playcircuit/gateway/internal/dependencies/clock"
	"github.com/playcircuit/gateway/internal/dependencies/random"
	"github.com/playcircuit/gateway/internal/services/invite"
	"github.com/playcircuit/gateway/internal/services/ledger"
	redisstorage "github.com/playcircuit/gateway/internal/storage/redis"
)

// Config holds CLI configuration from flags and environment
type Config struct {
	ServerURL string
	RedisURL  string
	Token     string
}

// DefaultConfig returns CLI defaults, honoring environment variables
func DefaultConfig() *Config {
	cfg := &Config{
		ServerURL: "http://localhost:8080",
		RedisURL:  "redis://localhost:6379",
	}
	if v := os.Getenv("GATECTL_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("GATECTL_TOKEN"); v != "" {
		cfg.Token = v
	}
	return cfg
}

// openStore connects to Redis for direct out-of-band store access
func (c *Config) openStore() (*redisstorage.Storage, error) {
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = c.RedisURL

	store, err := redisstorage.New(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return store, nil
}

// inviteService builds an invite service over the direct store connection
func (c *Config) inviteService() (*invite.Service, func(), error) {
	store, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}
	svc := invite.New(store, clock.New(), random.New())
	return svc, func() { _ = store.Close() }, nil
}

// ledgerService builds a ledger service over the direct store connection
func (c *Config) ledgerService() (*ledger.Service, func(), error) {
	store, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}
	svc := ledger.New(store, clock.New(), random.New())
	return svc, func() { _ = store.Close() }, nil
}

// printJSON writes the value as indented JSON to stdout
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
