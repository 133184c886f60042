package gateway

import (
	"context"

	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/services/ledger"
)

// handleUpdateProfile filters the payload through the allow-list and upserts
// the (uid, projectId) profile row. Disallowed fields are dropped silently.
func (d *Dispatcher) handleUpdateProfile(ctx context.Context, uid model.UserID, req Request) (Response, error) {
	payload := req.Object("payload")
	if payload == nil {
		return Failure(MsgMissingFields), nil
	}

	written, err := d.profiles.Update(ctx, uid, model.ProjectID(req.String("projectId")), payload)
	if err != nil {
		return nil, err
	}

	return Success("profile updated").With("payload", written), nil
}

// handleGetProfile returns the stored field map for one project, or the maps
// of every project the user has data for when projectId is omitted
func (d *Dispatcher) handleGetProfile(ctx context.Context, uid model.UserID, req Request) (Response, error) {
	if req.Has("projectId") {
		fields, err := d.profiles.Get(ctx, uid, model.ProjectID(req.String("projectId")))
		if err != nil {
			return nil, err
		}
		return Success("profile fetched").With("profile", fields), nil
	}

	all, err := d.profiles.GetAll(ctx, uid)
	if err != nil {
		return nil, err
	}
	return Success("profile fetched").With("profiles", all), nil
}

// handleRedeemInvite claims the code for the bound identity. The store-level
// conditional write guarantees a contested code is won exactly once.
func (d *Dispatcher) handleRedeemInvite(ctx context.Context, uid model.UserID, req Request) (Response, error) {
	claimed, err := d.invites.Redeem(ctx, req.String("code"), uid)
	if err != nil {
		return nil, err
	}

	return Success("invite code redeemed").With("plan", claimed.Plan), nil
}

// handleEarnCircuit appends one earn entry to the ledger. Repeating the same
// request appends again; retries are not deduplicated here.
func (d *Dispatcher) handleEarnCircuit(ctx context.Context, uid model.UserID, req Request) (Response, error) {
	amount, ok := req.Number("amount")
	if !ok || amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	entry, err := d.ledger.RecordEarn(
		ctx,
		uid,
		model.ProjectID(req.String("projectId")),
		int64(amount),
		req.String("source"),
		req.String("referenceId"),
	)
	if err != nil {
		return nil, err
	}

	return Success("circuit granted").With("amount", entry.Amount), nil
}
