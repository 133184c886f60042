package storage

import (
	"context"

	"github.com/playcircuit/gateway/internal/model"
)

// Store defines the interface for data persistence
type Store interface {
	// Profile operations
	UpsertProfile(ctx context.Context, profile *model.PlayerProfile) error
	GetProfile(ctx context.Context, uid model.UserID, projectID model.ProjectID) (*model.PlayerProfile, error)
	GetProfiles(ctx context.Context, uid model.UserID) ([]*model.PlayerProfile, error)

	// Invite code operations.
	// ClaimInviteCode atomically sets UsedBy to uid only if it is still
	// unset; it returns model.ErrInviteAlreadyUsed when another identity
	// won the race and model.ErrInviteNotFound when the code does not exist.
	CreateInviteCode(ctx context.Context, invite *model.InviteCode) error
	GetInviteCode(ctx context.Context, code string) (*model.InviteCode, error)
	ClaimInviteCode(ctx context.Context, code string, uid model.UserID) (*model.InviteCode, error)

	// Ledger operations. Entries are append-only and never rewritten.
	AppendLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error
	ListLedgerEntries(ctx context.Context, uid model.UserID, projectID model.ProjectID) ([]*model.LedgerEntry, error)
}
