package profile

import (
	"context"
	"errors"

	"github.com/playcircuit/gateway/internal/dependencies/clock"
	"github.com/playcircuit/gateway/internal/model"
	"github.com/playcircuit/gateway/internal/storage"
)

// Config holds configuration for the profile service
type Config struct {
	// AllowedFields is the fixed set of field names clients may write.
	// Anything outside the set is dropped silently, never rejected.
	AllowedFields []string
}

// DefaultConfig returns the default writable field set
func DefaultConfig() Config {
	return Config{
		AllowedFields: []string{"nickname", "avatar", "settings", "level", "score"},
	}
}

// Service manages per-project player profile data
type Service struct {
	storage storage.Store
	clock   clock.Clock
	allowed map[string]struct{}
}

// New creates a new profile service
func New(storage storage.Store, clock clock.Clock, cfg Config) *Service {
	if len(cfg.AllowedFields) == 0 {
		cfg = DefaultConfig()
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedFields))
	for _, field := range cfg.AllowedFields {
		allowed[field] = struct{}{}
	}
	return &Service{
		storage: storage,
		clock:   clock,
		allowed: allowed,
	}
}

// FilterFields returns the subset of payload whose keys are allow-listed
func (s *Service) FilterFields(payload map[string]any) map[string]any {
	filtered := make(map[string]any)
	for key, value := range payload {
		if _, ok := s.allowed[key]; ok {
			filtered[key] = value
		}
	}
	return filtered
}

// Update filters payload down to the allow-list and upserts the profile row.
// Last writer wins; the stored field map is replaced, not merged. Profile
// rows are created lazily here on first write. Returns the map actually
// written.
func (s *Service) Update(ctx context.Context, uid model.UserID, projectID model.ProjectID, payload map[string]any) (map[string]any, error) {
	filtered := s.FilterFields(payload)

	profile := &model.PlayerProfile{
		UserID:    uid,
		ProjectID: projectID,
		Fields:    filtered,
		UpdatedAt: s.clock.Now(),
	}

	if err := s.storage.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return filtered, nil
}

// Get returns the stored field map for one project. A user with no profile
// row yet gets an empty map, not an error.
func (s *Service) Get(ctx context.Context, uid model.UserID, projectID model.ProjectID) (map[string]any, error) {
	profile, err := s.storage.GetProfile(ctx, uid, projectID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if profile.Fields == nil {
		return map[string]any{}, nil
	}
	return profile.Fields, nil
}

// GetAll returns the field maps of every project the user has data for
func (s *Service) GetAll(ctx context.Context, uid model.UserID) (map[model.ProjectID]map[string]any, error) {
	profiles, err := s.storage.GetProfiles(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := make(map[model.ProjectID]map[string]any, len(profiles))
	for _, profile := range profiles {
		fields := profile.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		result[profile.ProjectID] = fields
	}
	return result, nil
}
