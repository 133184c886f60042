package invite

import (
	"context"
	"errors"

	"github.com/playcircuit/gateway/internal/dependencies/clock"
	"github.com/playcircuit/gateway/internal/dependencies/random"
	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/storage"
)

const (
	// CodeLength is the length of generated invite codes
	CodeLength = 8
	// CodeAlphabet is the characters used in invite codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Service manages invite code redemption and provisioning
type Service struct {
	storage storage.Store
	clock   clock.Clock
	random  random.Random
}

// New creates a new invite service
func New(storage storage.Store, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Redeem claims the code for uid. The claim is a single conditional write at
// the store layer, so concurrent attempts on the same code produce exactly
// one winner; losers get model.ErrInviteAlreadyUsed.
func (s *Service) Redeem(ctx context.Context, code string, uid model.UserID) (*model.InviteCode, error) {
	if code == "" {
		return nil, model.ErrInviteNotFound
	}
	return s.storage.ClaimInviteCode(ctx, code, uid)
}

// Create provisions a new invite code with the given plan. When code is
// empty a fresh one is generated.
func (s *Service) Create(ctx context.Context, code, plan string) (*model.InviteCode, error) {
	now := s.clock.Now()

	if code != "" {
		invite := &model.InviteCode{Code: code, Plan: plan, CreatedAt: now}
		if err := s.storage.CreateInviteCode(ctx, invite); err != nil {
			return nil, err
		}
		return invite, nil
	}

	// Generate until we land on an unused code
	for {
		invite := &model.InviteCode{
			Code:      s.random.String(CodeLength, CodeAlphabet),
			Plan:      plan,
			CreatedAt: now,
		}
		err := s.storage.CreateInviteCode(ctx, invite)
		if err == nil {
			return invite, nil
		}
		if !errors.Is(err, model.ErrInviteExists) {
			return nil, err
		}
	}
}

// Get retrieves an invite code by its code string
func (s *Service) Get(ctx context.Context, code string) (*model.InviteCode, error) {
	return s.storage.GetInviteCode(ctx, code)
}
