package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/playcircuit/gateway/internal/dependencies/mocks"
	"github.com/playcircuit/gateway/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// Update tests

func (s *ServiceSuite) TestUpdateWritesAllowedFields() {
	written, err := s.service.Update(s.ctx, "user-1", "proj-1", map[string]any{
		"nickname": "Al",
		"level":    float64(5),
	})
	s.Require().NoError(err)
	s.Equal(map[string]any{"nickname": "Al", "level": float64(5)}, written)

	stored, err := s.service.Get(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Equal("Al", stored["nickname"])
}

func (s *ServiceSuite) TestUpdateDropsDisallowedFieldsSilently() {
	written, err := s.service.Update(s.ctx, "user-1", "proj-1", map[string]any{
		"nickname":        "Al",
		"secretAdminFlag": true,
		"plan":            "pro",
	})
	s.Require().NoError(err)
	s.Equal(map[string]any{"nickname": "Al"}, written)

	stored, err := s.service.Get(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Equal(map[string]any{"nickname": "Al"}, stored)
}

func (s *ServiceSuite) TestUpdateLastWriterWins() {
	_, _ = s.service.Update(s.ctx, "user-1", "proj-1", map[string]any{"nickname": "Al", "level": float64(3)})
	_, _ = s.service.Update(s.ctx, "user-1", "proj-1", map[string]any{"nickname": "Bea"})

	stored, err := s.service.Get(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Equal(map[string]any{"nickname": "Bea"}, stored)
}

func (s *ServiceSuite) TestUpdateStampsClockTime() {
	_, err := s.service.Update(s.ctx, "user-1", "proj-1", map[string]any{"nickname": "Al"})
	s.Require().NoError(err)

	profile, err := s.storage.GetProfile(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, profile.UpdatedAt)
}

// Get tests

func (s *ServiceSuite) TestGetNewUserReturnsEmptyMap() {
	fields, err := s.service.Get(s.ctx, "new-user", "proj-1")
	s.Require().NoError(err)
	s.Empty(fields)
	s.NotNil(fields)
}

func (s *ServiceSuite) TestGetAll() {
	_, _ = s.service.Update(s.ctx, "user-1", "proj-1", map[string]any{"nickname": "Al"})
	_, _ = s.service.Update(s.ctx, "user-1", "proj-2", map[string]any{"level": float64(7)})

	all, err := s.service.GetAll(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal("Al", all["proj-1"]["nickname"])
	s.Equal(float64(7), all["proj-2"]["level"])
}

func (s *ServiceSuite) TestGetAllEmpty() {
	all, err := s.service.GetAll(s.ctx, "new-user")
	s.Require().NoError(err)
	s.Empty(all)
}

// Config tests

func (s *ServiceSuite) TestCustomAllowList() {
	service := New(s.storage, s.clock, Config{AllowedFields: []string{"alias"}})

	written, err := service.Update(s.ctx, "user-1", "proj-1", map[string]any{
		"alias":    "Al",
		"nickname": "dropped",
	})
	s.Require().NoError(err)
	s.Equal(map[string]any{"alias": "Al"}, written)
}
