package ledger

import (
	"context"
	"errors"

	"github.com/playcircuit/gateway/internal/dependencies/clock"
	"github.com/playcircuit/gateway/internal/dependencies/random"
	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/storage"
)

// Errors
var (
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

const (
	// entryIDLength is the length of generated ledger entry ids
	entryIDLength = 20
	// entryIDAlphabet is the characters used in ledger entry ids
	entryIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Service appends entries to the append-only economic ledger.
//
// Appends carry no idempotency guarantee: a retried RecordEarn writes a
// second, distinct entry. Clients that need retry safety must deduplicate
// on ReferenceID downstream.
type Service struct {
	storage storage.Store
	clock   clock.Clock
	random  random.Random
}

// New creates a new ledger service
func New(storage storage.Store, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// RecordEarn appends one immutable earn entry. There is no balance
// computation and no overdraft check; failure is only store failure.
func (s *Service) RecordEarn(ctx context.Context, uid model.UserID, projectID model.ProjectID, amount int64, source, referenceID string) (*model.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := &model.LedgerEntry{
		ID:          "le_" + s.random.String(entryIDLength, entryIDAlphabet),
		UserID:      uid,
		ProjectID:   projectID,
		Amount:      amount,
		Type:        model.LedgerEntryEarn,
		Source:      source,
		ReferenceID: referenceID,
		Timestamp:   s.clock.Now(),
	}

	if err := s.storage.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns all entries for a user's project, oldest first
func (s *Service) List(ctx context.Context, uid model.UserID, projectID model.ProjectID) ([]*model.LedgerEntry, error) {
	return s.storage.ListLedgerEntries(ctx, uid, projectID)
}
