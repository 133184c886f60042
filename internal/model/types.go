package model

import "time"

// UserID uniquely identifies a verified user across the system.
// It is assigned by the external identity provider, never by this service.
type UserID string

// ProjectID identifies a game project a user has data under
type ProjectID string

// PlayerProfile holds the per-project game data for one user.
// One logical row per (UserID, ProjectID) pair; mutated only through the
// allow-list filtered update path.
type PlayerProfile struct {
	UserID    UserID         `json:"uid"`
	ProjectID ProjectID      `json:"project_id"`
	Fields    map[string]any `json:"data"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// InviteCode is a single-use code created out-of-band.
// UsedBy transitions from empty to exactly one UserID and never changes again.
type InviteCode struct {
	Code      string    `json:"code"`
	Plan      string    `json:"plan"`
	UsedBy    UserID    `json:"used_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Used reports whether the code has been claimed
func (c *InviteCode) Used() bool {
	return c.UsedBy != ""
}

// LedgerEntryType classifies a ledger entry
type LedgerEntryType string

const (
	LedgerEntryEarn  LedgerEntryType = "earn"
	LedgerEntrySpend LedgerEntryType = "spend"
)

// LedgerEntry is an immutable record of one economic event. Entries are
// append-only; balances are derived elsewhere and never stored here.
type LedgerEntry struct {
	ID          string          `json:"id"`
	UserID      UserID          `json:"uid"`
	ProjectID   ProjectID       `json:"project_id"`
	Amount      int64           `json:"amount"`
	Type        LedgerEntryType `json:"type"`
	Source      string          `json:"source"`
	ReferenceID string          `json:"reference_id,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}
