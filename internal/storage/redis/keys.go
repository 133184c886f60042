package redis

import (
	"fmt"

	"github.com/playcircuit/gateway/internal/model"
)

// Key prefix for all gateway data
const keyPrefix = "circuit"

// Key generation functions for each entity type

// profileKey returns the Redis key for a PlayerProfile
func profileKey(uid model.UserID, projectID model.ProjectID) string {
	return fmt.Sprintf("%s:profile:%s:%s", keyPrefix, uid, projectID)
}

// profilesForUserIndexKey returns the Redis key for the SET of a user's profile keys
func profilesForUserIndexKey(uid model.UserID) string {
	return fmt.Sprintf("%s:idx:profiles_for_user:%s", keyPrefix, uid)
}

// inviteKey returns the Redis key for an InviteCode hash
func inviteKey(code string) string {
	return fmt.Sprintf("%s:invite:%s", keyPrefix, code)
}

// ledgerKey returns the Redis key for a user's per-project ledger list
func ledgerKey(uid model.UserID, projectID model.ProjectID) string {
	return fmt.Sprintf("%s:ledger:%s:%s", keyPrefix, uid, projectID)
}
