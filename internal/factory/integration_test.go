package factory

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/server"
)

type IntegrationSuite struct {
	suite.Suite
	app    *TestApp
	server *httptest.Server
	ctx    context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.server = httptest.NewServer(server.NewRouter(s.app.Gatekeeper, logger))
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.server.Close()
}

// connect dials the websocket endpoint with the given token and consumes
// the acknowledgment
func (s *IntegrationSuite) connect(token string) *websocket.Conn {
	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ack map[string]any
	s.Require().NoError(conn.ReadJSON(&ack))
	s.Require().Equal(true, ack["success"])
	return conn
}

func (s *IntegrationSuite) roundTrip(conn *websocket.Conn, request map[string]any) map[string]any {
	s.Require().NoError(conn.WriteJSON(request))
	var response map[string]any
	s.Require().NoError(conn.ReadJSON(&response))
	return response
}

func (s *IntegrationSuite) TestLivenessEndpoint() {
	resp, err := s.server.Client().Get(s.server.URL + "/healthz")
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(200, resp.StatusCode)
}

func (s *IntegrationSuite) TestProfileRoundTrip() {
	conn := s.connect("token-alice")
	defer func() { _ = conn.Close() }()

	// Fresh user: no profile row yet
	got := s.roundTrip(conn, map[string]any{"action": "getProfile", "projectId": "p1"})
	s.Equal(true, got["success"])
	s.Empty(got["profile"])

	updated := s.roundTrip(conn, map[string]any{
		"action":    "updateProfile",
		"projectId": "p1",
		"payload":   map[string]any{"nickname": "Al", "secretAdminFlag": true},
	})
	s.Equal(true, updated["success"])
	s.Equal(map[string]any{"nickname": "Al"}, updated["payload"])

	got = s.roundTrip(conn, map[string]any{"action": "getProfile", "projectId": "p1"})
	s.Equal(map[string]any{"nickname": "Al"}, got["profile"])
}

func (s *IntegrationSuite) TestProfileSurvivesReconnect() {
	conn := s.connect("token-alice")
	_ = s.roundTrip(conn, map[string]any{
		"action":    "updateProfile",
		"projectId": "p1",
		"payload":   map[string]any{"level": 9},
	})
	_ = conn.Close()

	reconnected := s.connect("token-alice")
	defer func() { _ = reconnected.Close() }()

	got := s.roundTrip(reconnected, map[string]any{"action": "getProfile", "projectId": "p1"})
	s.Equal(map[string]any{"level": float64(9)}, got["profile"])
}

func (s *IntegrationSuite) TestInviteRedemptionAcrossIdentities() {
	_ = s.app.Memory.CreateInviteCode(s.ctx, &model.InviteCode{Code: "ABC123", Plan: "pro"})

	alice := s.connect("token-alice")
	defer func() { _ = alice.Close() }()
	bob := s.connect("token-bob")
	defer func() { _ = bob.Close() }()

	first := s.roundTrip(alice, map[string]any{"action": "redeemInvite", "code": "ABC123"})
	s.Equal(true, first["success"])
	s.Equal("pro", first["plan"])

	second := s.roundTrip(bob, map[string]any{"action": "redeemInvite", "code": "ABC123"})
	s.Equal(false, second["success"])
	s.Equal("already used", second["message"])
}

func (s *IntegrationSuite) TestEarnCircuitAppendsPerRequest() {
	conn := s.connect("token-alice")
	defer func() { _ = conn.Close() }()

	grant := map[string]any{
		"action":    "earnCircuit",
		"projectId": "p1",
		"amount":    25,
		"source":    "daily-bonus",
	}
	s.Equal(true, s.roundTrip(conn, grant)["success"])
	s.Equal(true, s.roundTrip(conn, grant)["success"])

	entries, err := s.app.Storage.ListLedgerEntries(s.ctx, "user-alice", "p1")
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *IntegrationSuite) TestMalformedMessageKeepsSessionUsable() {
	conn := s.connect("token-alice")
	defer func() { _ = conn.Close() }()

	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("}{ not json")))
	var failure map[string]any
	s.Require().NoError(conn.ReadJSON(&failure))
	s.Equal(false, failure["success"])

	got := s.roundTrip(conn, map[string]any{"action": "getProfile", "projectId": "p1"})
	s.Equal(true, got["success"])
}

func (s *IntegrationSuite) TestRejectedConnectionGetsNoPayload() {
	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?token=bogus"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	s.Error(err)
}
