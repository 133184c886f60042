package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/playcircuit/gateway/internal/config"
	"github.com/playcircuit/gateway/internal/dependencies/mocks"
	"github.com/playcircuit/gateway/internal/dependencies/random"
	"github.com/playcircuit/gateway/internal/identity"
	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/services/profile"
	"github.com/playcircuit/gateway/internal/storage/memory"
)

// TestApp is an App over in-memory storage with a static verifier and a
// mock clock, for integration tests
type TestApp struct {
	*App

	Memory    *memory.Storage
	MockClock *mocks.MockClock
	Tokens    map[string]model.UserID
}

// NewTestApp wires a fully in-process application
func NewTestApp() *TestApp {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := random.New()

	tokens := map[string]model.UserID{
		"token-alice": "user-alice",
		"token-bob":   "user-bob",
	}
	verifier := identity.NewStaticVerifier(tokens)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	proc := config.Config{
		VerifyTimeout:  5 * time.Second,
		HandlerTimeout: 5 * time.Second,
	}

	app := newWithDependencies(store, verifier, clk, rnd, profile.DefaultConfig(), proc, logger)

	return &TestApp{
		App:       app,
		Memory:    store,
		MockClock: clk,
		Tokens:    tokens,
	}
}
