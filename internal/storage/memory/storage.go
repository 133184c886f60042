package memory

import (
	"context"
	"sync"

	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/storage"
)

// Storage is an in-memory implementation of the store interface
type Storage struct {
	mu sync.RWMutex

	profiles map[profileKey]*model.PlayerProfile
	invites  map[string]*model.InviteCode
	ledger   map[ledgerKey][]*model.LedgerEntry
}

type profileKey struct {
	uid       model.UserID
	projectID model.ProjectID
}

type ledgerKey struct {
	uid       model.UserID
	projectID model.ProjectID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles: make(map[profileKey]*model.PlayerProfile),
		invites:  make(map[string]*model.InviteCode),
		ledger:   make(map[ledgerKey][]*model.LedgerEntry),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Profile operations

func (s *Storage) UpsertProfile(ctx context.Context, profile *model.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := profileKey{uid: profile.UserID, projectID: profile.ProjectID}
	copied := *profile
	s.profiles[key] = &copied
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, uid model.UserID, projectID model.ProjectID) (*model.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[profileKey{uid: uid, projectID: projectID}]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *Storage) GetProfiles(ctx context.Context, uid model.UserID) ([]*model.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var profiles []*model.PlayerProfile
	for key, profile := range s.profiles {
		if key.uid == uid {
			copied := *profile
			profiles = append(profiles, &copied)
		}
	}
	return profiles, nil
}

// Invite code operations

func (s *Storage) CreateInviteCode(ctx context.Context, invite *model.InviteCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invites[invite.Code]; ok {
		return model.ErrInviteExists
	}
	copied := *invite
	s.invites[invite.Code] = &copied
	return nil
}

func (s *Storage) GetInviteCode(ctx context.Context, code string) (*model.InviteCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invite, ok := s.invites[code]
	if !ok {
		return nil, model.ErrInviteNotFound
	}
	copied := *invite
	return &copied, nil
}

func (s *Storage) ClaimInviteCode(ctx context.Context, code string, uid model.UserID) (*model.InviteCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[code]
	if !ok {
		return nil, model.ErrInviteNotFound
	}
	if invite.Used() {
		return nil, model.ErrInviteAlreadyUsed
	}
	invite.UsedBy = uid
	copied := *invite
	return &copied, nil
}

// Ledger operations

func (s *Storage) AppendLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ledgerKey{uid: entry.UserID, projectID: entry.ProjectID}
	copied := *entry
	s.ledger[key] = append(s.ledger[key], &copied)
	return nil
}

func (s *Storage) ListLedgerEntries(ctx context.Context, uid model.UserID, projectID model.ProjectID) ([]*model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.ledger[ledgerKey{uid: uid, projectID: projectID}]
	entries := make([]*model.LedgerEntry, 0, len(stored))
	for _, entry := range stored {
		copied := *entry
		entries = append(entries, &copied)
	}
	return entries, nil
}
