package gateway

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/services/invite"
	"github.com/playcircuit/gateway/internal/services/ledger"
	"github.com/playcircuit/gateway/internal/services/profile"
)

// HandlerFunc processes one action on behalf of the bound identity
type HandlerFunc func(ctx context.Context, uid model.UserID, req Request) (Response, error)

// actionSpec pairs a handler with the fields it requires
type actionSpec struct {
	required []string
	handle   HandlerFunc
}

// Dispatcher routes parsed action messages to handlers. It is stateless and
// shared by all sessions; per-identity state lives in the store, never here.
type Dispatcher struct {
	actions map[string]actionSpec
	logger  *slog.Logger

	profiles *profile.Service
	invites  *invite.Service
	ledger   *ledger.Service
}

// NewDispatcher creates the routing table over the three business services
func NewDispatcher(profiles *profile.Service, invites *invite.Service, ledgerSvc *ledger.Service, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		actions:  make(map[string]actionSpec),
		logger:   logger,
		profiles: profiles,
		invites:  invites,
		ledger:   ledgerSvc,
	}

	d.register("updateProfile", []string{"projectId", "payload"}, d.handleUpdateProfile)
	d.register("getProfile", nil, d.handleGetProfile)
	d.register("redeemInvite", []string{"code"}, d.handleRedeemInvite)
	d.register("earnCircuit", []string{"projectId", "amount", "source"}, d.handleEarnCircuit)

	return d
}

func (d *Dispatcher) register(action string, required []string, handle HandlerFunc) {
	d.actions[action] = actionSpec{required: required, handle: handle}
}

// Dispatch validates and routes one message. It never panics and never
// returns an error: every outcome is a response envelope, so a handler
// failure cannot terminate the calling session.
func (d *Dispatcher) Dispatch(ctx context.Context, uid model.UserID, action string, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panic",
				slog.String("action", action),
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
			resp = Failure(MsgInternalError)
		}
	}()

	spec, ok := d.actions[action]
	if !ok {
		return Failure(MsgUnknownAction)
	}

	for _, field := range spec.required {
		if !req.Has(field) {
			return Failure(MsgMissingFields)
		}
	}

	// A client-supplied uid must match the bound identity; identity is never
	// taken from the message for scoping writes.
	if req.Has("uid") && req.String("uid") != string(uid) {
		return Failure(MsgUnauthorized)
	}

	result, err := spec.handle(ctx, uid, req)
	if err != nil {
		return failureFor(err, d.logger)
	}
	return result
}
