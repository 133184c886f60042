package gateway

import (
	"errors"
	"log/slog"

	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/services/ledger"
)

// Client-visible failure messages
const (
	MsgMalformedMessage = "malformed message"
	MsgMissingFields    = "missing required fields"
	MsgUnknownAction    = "unknown action"
	MsgUnauthorized     = "unauthorized"
	MsgInternalError    = "internal error"
)

// Response is the wire envelope for every server->client message.
// Action-specific payload fields sit alongside success and message.
type Response map[string]any

// Success builds a success envelope
func Success(message string) Response {
	return Response{"success": true, "message": message}
}

// Failure builds a failure envelope
func Failure(message string) Response {
	return Response{"success": false, "message": message}
}

// With adds a payload field to the envelope
func (r Response) With(key string, value any) Response {
	r[key] = value
	return r
}

// OK reports whether the envelope is a success
func (r Response) OK() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// Request is one parsed client message. Field accessors tolerate missing or
// mistyped values; handlers treat a failed accessor as a validation failure,
// never a panic.
type Request map[string]any

// String returns the named field as a string, or "" if absent or not a string
func (r Request) String(name string) string {
	value, _ := r[name].(string)
	return value
}

// Object returns the named field as an object, or nil
func (r Request) Object(name string) map[string]any {
	value, _ := r[name].(map[string]any)
	return value
}

// Number returns the named field as a float64 (the JSON number type), with
// ok=false if absent or not a number
func (r Request) Number(name string) (float64, bool) {
	value, ok := r[name].(float64)
	return value, ok
}

// Has reports whether the named field is present
func (r Request) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// failureFor maps a handler error to the client-visible failure envelope.
// Known domain errors surface their own message; anything else is a generic
// internal failure so store internals never leak to the peer.
func failureFor(err error, logger *slog.Logger) Response {
	switch {
	case errors.Is(err, model.ErrInviteNotFound):
		return Failure(model.ErrInviteNotFound.Error())
	case errors.Is(err, model.ErrInviteAlreadyUsed):
		return Failure(model.ErrInviteAlreadyUsed.Error())
	case errors.Is(err, model.ErrUnauthorized):
		return Failure(MsgUnauthorized)
	case errors.Is(err, ledger.ErrInvalidAmount):
		return Failure(ledger.ErrInvalidAmount.Error())
	default:
		logger.Error("action failed", slog.String("error", err.Error()))
		return Failure(MsgInternalError)
	}
}
