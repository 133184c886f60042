package factory

import (
	"io"
	"log/slog"

	"github.com/playcircuit/gateway/internal/config"
	"github.com/playcircuit/gateway/internal/dependencies/clock"
	"github.com/playcircuit/gateway/internal/dependencies/random"
	"github.com/playcircuit/gateway/internal/gateway"
	"github.com/playcircuit/gateway/internal/identity"
	"github.com/playcircuit/gateway/internal/services/invite"
	"github.com/playcircuit/gateway/internal/services/ledger"
	"github.com/playcircuit/gateway/internal/services/profile"
	"github.com/playcircuit/gateway/internal/storage"
	"github.com/playcircuit/gateway/internal/storage/memory"
	redisstorage "github.com/playcircuit/gateway/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Verifier identity.Verifier

	// Services
	ProfileService *profile.Service
	InviteService  *invite.Service
	LedgerService  *ledger.Service

	// Protocol
	Dispatcher *gateway.Dispatcher
	Gatekeeper *gateway.Gatekeeper
}

// Config holds configuration for the application factory
type Config struct {
	// Process is the environment-derived process configuration
	Process config.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Verifier overrides the JWT verifier built from Process (for tests)
	Verifier identity.Verifier
	// ProfileConfig holds the writable field allow-list (optional)
	// If zero value, defaults to profile.DefaultConfig()
	ProfileConfig profile.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	switch cfg.Process.StorageType {
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Process.RedisURL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		store = memory.New()
	}

	// Create the token verifier unless one was injected
	verifier := cfg.Verifier
	if verifier == nil {
		key, err := identity.ParsePublicKey(cfg.Process.AuthPublicKey)
		if err != nil {
			return nil, err
		}
		verifier, err = identity.NewJWTVerifier(identity.JWTConfig{
			Issuer:   cfg.Process.AuthIssuer,
			Audience: cfg.Process.AuthAudience,
			Key:      key,
		})
		if err != nil {
			return nil, err
		}
	}

	clk := clock.New()
	rnd := random.New()

	profileCfg := cfg.ProfileConfig
	if len(profileCfg.AllowedFields) == 0 {
		profileCfg = profile.DefaultConfig()
	}

	return newWithDependencies(store, verifier, clk, rnd, profileCfg, cfg.Process, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, verifier identity.Verifier, clk clock.Clock, rnd random.Random, profileCfg profile.Config, proc config.Config, logger *slog.Logger) *App {
	profileService := profile.New(store, clk, profileCfg)
	inviteService := invite.New(store, clk, rnd)
	ledgerService := ledger.New(store, clk, rnd)

	dispatcher := gateway.NewDispatcher(profileService, inviteService, ledgerService, logger)
	gatekeeper := gateway.NewGatekeeper(verifier, dispatcher, clk, logger, gateway.GatekeeperConfig{
		VerifyTimeout:  proc.VerifyTimeout,
		HandlerTimeout: proc.HandlerTimeout,
	})

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Verifier:       verifier,
		ProfileService: profileService,
		InviteService:  inviteService,
		LedgerService:  ledgerService,
		Dispatcher:     dispatcher,
		Gatekeeper:     gatekeeper,
	}
}
