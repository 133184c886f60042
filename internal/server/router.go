package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the gateway's HTTP surface: the websocket endpoint and the
// unauthenticated liveness responder. The liveness body is static; it exists
// for process health checks only and is not part of the protocol.
func NewRouter(gatekeeper http.Handler, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.Use(Recovery(logger))

	r.Handle("/ws", gatekeeper).Methods(http.MethodGet)
	r.HandleFunc("/healthz", livenessHandler).Methods(http.MethodGet)
	r.HandleFunc("/", livenessHandler).Methods(http.MethodGet)

	return r
}

func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Master Gateway running"))
}
