package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/playcircuit/gateway/internal/dependencies/clock"
	"github.com/playcircuit/gateway/internal/identity"
)

// GatekeeperConfig holds configuration for the connection gatekeeper
type GatekeeperConfig struct {
	// VerifyTimeout bounds the identity provider round-trip per connection
	VerifyTimeout time.Duration
	// HandlerTimeout bounds each message's handler once a session is live
	HandlerTimeout time.Duration
}

// DefaultGatekeeperConfig returns default gatekeeper timeouts
func DefaultGatekeeperConfig() GatekeeperConfig {
	return GatekeeperConfig{
		VerifyTimeout:  10 * time.Second,
		HandlerTimeout: 30 * time.Second,
	}
}

// Gatekeeper accepts new websocket connections, verifies the credential
// carried in the initial request, and promotes verified connections to
// sessions. Failed connections are closed without an application-level
// payload so verification internals never reach the peer.
type Gatekeeper struct {
	verifier   identity.Verifier
	dispatcher *Dispatcher
	clock      clock.Clock
	logger     *slog.Logger
	cfg        GatekeeperConfig
	upgrader   websocket.Upgrader
}

// NewGatekeeper creates a gatekeeper over the given verifier and dispatcher
func NewGatekeeper(verifier identity.Verifier, dispatcher *Dispatcher, clk clock.Clock, logger *slog.Logger, cfg GatekeeperConfig) *Gatekeeper {
	if cfg.VerifyTimeout == 0 {
		cfg.VerifyTimeout = DefaultGatekeeperConfig().VerifyTimeout
	}
	if cfg.HandlerTimeout == 0 {
		cfg.HandlerTimeout = DefaultGatekeeperConfig().HandlerTimeout
	}
	return &Gatekeeper{
		verifier:   verifier,
		dispatcher: dispatcher,
		clock:      clk,
		logger:     logger,
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			// Game clients are not browsers; cross-origin handshakes are fine
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles one websocket connect. The handler goroutine is the
// connection's unit of concurrency: it runs the handshake and then the
// session's sequential message loop until disconnect.
func (g *Gatekeeper) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	if token == "" {
		g.logger.Warn("connection rejected", slog.String("reason", "missing credential"), slog.String("remote", r.RemoteAddr))
		_ = conn.Close()
		return
	}

	verifyCtx, cancel := context.WithTimeout(r.Context(), g.cfg.VerifyTimeout)
	uid, err := g.verifier.VerifyToken(verifyCtx, token)
	cancel()
	if err != nil {
		reason := "auth failure"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "verification timeout"
		}
		// Diagnostics stay local; the peer only sees the transport close
		g.logger.Warn("connection rejected",
			slog.String("reason", reason),
			slog.String("error", err.Error()),
			slog.String("remote", r.RemoteAddr),
		)
		_ = conn.Close()
		return
	}

	ack := Success("login successful").With("uid", string(uid))
	if err := conn.WriteJSON(ack); err != nil {
		g.logger.Warn("ack write failed", slog.String("error", err.Error()))
		_ = conn.Close()
		return
	}

	g.logger.Info("session established", slog.String("uid", string(uid)), slog.String("remote", r.RemoteAddr))

	session := NewSession(conn, uid, g.clock.Now(), g.dispatcher, g.logger, g.cfg.HandlerTimeout)
	session.Run(r.Context())
}
