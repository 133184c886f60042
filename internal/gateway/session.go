package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/playcircuit/gateway/internal/model"
)

// Conn is the subset of the websocket connection a session uses.
// *websocket.Conn from gorilla satisfies it; tests substitute a fake.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// Session owns one live connection and one verified identity. The identity
// is bound at construction and never changes for the session's lifetime.
type Session struct {
	conn       Conn
	uid        model.UserID
	createdAt  time.Time
	dispatcher *Dispatcher
	logger     *slog.Logger

	// handlerTimeout bounds each message's handler, covering every store
	// call it makes. Zero means no deadline.
	handlerTimeout time.Duration
}

// NewSession binds a verified identity to a connection
func NewSession(conn Conn, uid model.UserID, createdAt time.Time, dispatcher *Dispatcher, logger *slog.Logger, handlerTimeout time.Duration) *Session {
	return &Session{
		conn:           conn,
		uid:            uid,
		createdAt:      createdAt,
		dispatcher:     dispatcher,
		logger:         logger.With(slog.String("uid", string(uid))),
		handlerTimeout: handlerTimeout,
	}
}

// UserID returns the bound identity
func (s *Session) UserID() model.UserID {
	return s.uid
}

// CreatedAt returns when the session was established
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Run processes inbound messages strictly sequentially until the transport
// closes: message N's response is written before message N+1 is read, so a
// client never observes out-of-order effects of its own requests. A write
// failure means the peer is gone and ends the session; the in-flight
// response is simply discarded with it.
func (s *Session) Run(ctx context.Context) {
	defer func() { _ = s.conn.Close() }()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			s.logger.Info("session closed", slog.String("reason", err.Error()))
			return
		}

		resp := s.handleMessage(ctx, raw)

		if err := s.conn.WriteJSON(resp); err != nil {
			s.logger.Info("session write failed", slog.String("error", err.Error()))
			return
		}
	}
}

// handleMessage parses one raw message and dispatches it. Malformed input
// yields a failure response, never a dropped message or a dead session.
func (s *Session) handleMessage(ctx context.Context, raw []byte) Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Failure(MsgMalformedMessage)
	}

	action, ok := req["action"].(string)
	if !ok || action == "" {
		return Failure(MsgMalformedMessage)
	}

	if s.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.handlerTimeout)
		defer cancel()
	}

	return s.dispatcher.Dispatch(ctx, s.uid, action, req)
}
