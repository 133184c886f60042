package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/storage"
)

// Invite hash field names
const (
	inviteFieldPlan      = "plan"
	inviteFieldUsedBy    = "used_by"
	inviteFieldCreatedAt = "created_at"
)

// Storage is a Redis-backed implementation of the store interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Profile operations

func (s *Storage) UpsertProfile(ctx context.Context, profile *model.PlayerProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	pKey := profileKey(profile.UserID, profile.ProjectID)
	indexKey := profilesForUserIndexKey(profile.UserID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, 0)
	pipe.SAdd(ctx, indexKey, pKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProfile(ctx context.Context, uid model.UserID, projectID model.ProjectID) (*model.PlayerProfile, error) {
	data, err := s.client.Get(ctx, profileKey(uid, projectID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.PlayerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Storage) GetProfiles(ctx context.Context, uid model.UserID) ([]*model.PlayerProfile, error) {
	indexKey := profilesForUserIndexKey(uid)

	profileKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(profileKeys) == 0 {
		return []*model.PlayerProfile{}, nil
	}

	values, err := s.client.MGet(ctx, profileKeys...).Result()
	if err != nil {
		return nil, err
	}

	profiles := make([]*model.PlayerProfile, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var profile model.PlayerProfile
		if err := json.Unmarshal([]byte(val.(string)), &profile); err != nil {
			continue // Skip invalid data
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}

// Invite code operations

func (s *Storage) CreateInviteCode(ctx context.Context, invite *model.InviteCode) error {
	key := inviteKey(invite.Code)

	// HSETNX on the plan field doubles as the existence check
	created, err := s.client.HSetNX(ctx, key, inviteFieldPlan, invite.Plan).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrInviteExists
	}

	return s.client.HSet(ctx, key, inviteFieldCreatedAt, invite.CreatedAt.Format(time.RFC3339Nano)).Err()
}

func (s *Storage) GetInviteCode(ctx context.Context, code string) (*model.InviteCode, error) {
	fields, err := s.client.HGetAll(ctx, inviteKey(code)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrInviteNotFound
	}
	return inviteFromFields(code, fields), nil
}

// ClaimInviteCode marks a code as used by uid. The claim itself is a single
// HSETNX, so when two sessions race on the same code Redis decides the winner
// and the loser sees model.ErrInviteAlreadyUsed.
func (s *Storage) ClaimInviteCode(ctx context.Context, code string, uid model.UserID) (*model.InviteCode, error) {
	key := inviteKey(code)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrInviteNotFound
	}

	claimed, err := s.client.HSetNX(ctx, key, inviteFieldUsedBy, string(uid)).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrInviteAlreadyUsed
	}

	return s.GetInviteCode(ctx, code)
}

func inviteFromFields(code string, fields map[string]string) *model.InviteCode {
	invite := &model.InviteCode{
		Code:   code,
		Plan:   fields[inviteFieldPlan],
		UsedBy: model.UserID(fields[inviteFieldUsedBy]),
	}
	if raw, ok := fields[inviteFieldCreatedAt]; ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			invite.CreatedAt = t
		}
	}
	return invite
}

// Ledger operations

func (s *Storage) AppendLedgerEntry(ctx context.Context, entry *model.LedgerEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.client.RPush(ctx, ledgerKey(entry.UserID, entry.ProjectID), data).Err()
}

func (s *Storage) ListLedgerEntries(ctx context.Context, uid model.UserID, projectID model.ProjectID) ([]*model.LedgerEntry, error) {
	values, err := s.client.LRange(ctx, ledgerKey(uid, projectID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LedgerEntry, 0, len(values))
	for _, val := range values {
		var entry model.LedgerEntry
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			continue // Skip invalid data
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
