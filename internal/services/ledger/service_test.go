package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/playcircuit/gateway/internal/dependencies/mocks"
	"github.com/playcircuit/gateway/internal/dependencies/random"
	"github.com/playcircuit/gateway/internal/model"
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
	s.service = New(s.storage, s.clock, random.New())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRecordEarnAppendsEntry() {
	entry, err := s.service.RecordEarn(s.ctx, "user-1", "proj-1", 50, "quest", "ref-1")
	s.Require().NoError(err)

	s.NotEmpty(entry.ID)
	s.Equal(model.UserID("user-1"), entry.UserID)
	s.Equal(model.ProjectID("proj-1"), entry.ProjectID)
	s.Equal(int64(50), entry.Amount)
	s.Equal(model.LedgerEntryEarn, entry.Type)
	s.Equal("quest", entry.Source)
	s.Equal("ref-1", entry.ReferenceID)
	s.Equal(s.clock.CurrentTime, entry.Timestamp)

	entries, err := s.service.List(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *ServiceSuite) TestRecordEarnWithoutReference() {
	entry, err := s.service.RecordEarn(s.ctx, "user-1", "proj-1", 10, "daily-bonus", "")
	s.Require().NoError(err)
	s.Empty(entry.ReferenceID)
}

func (s *ServiceSuite) TestRecordEarnRejectsNonPositiveAmount() {
	_, err := s.service.RecordEarn(s.ctx, "user-1", "proj-1", 0, "quest", "")
	s.ErrorIs(err, ErrInvalidAmount)

	_, err = s.service.RecordEarn(s.ctx, "user-1", "proj-1", -5, "quest", "")
	s.ErrorIs(err, ErrInvalidAmount)
}

// Identical repeated grants append distinct entries. Retries are not
// deduplicated; callers that need exactly-once must reconcile on ReferenceID.
func (s *ServiceSuite) TestRecordEarnRepeatedAppendsTwice() {
	first, err := s.service.RecordEarn(s.ctx, "user-1", "proj-1", 50, "quest", "ref-1")
	s.Require().NoError(err)
	second, err := s.service.RecordEarn(s.ctx, "user-1", "proj-1", 50, "quest", "ref-1")
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)

	entries, err := s.service.List(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *ServiceSuite) TestListEmpty() {
	entries, err := s.service.List(s.ctx, "user-1", "proj-1")
	s.Require().NoError(err)
	s.Empty(entries)
}
