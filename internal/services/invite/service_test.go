package invite

import (
	"context"
	"fmt"
	"sync"
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

// Redeem tests

func (s *ServiceSuite) TestRedeemSucceeds() {
	_, _ = s.service.Create(s.ctx, "ABC123", "pro")

	claimed, err := s.service.Redeem(s.ctx, "ABC123", "user-1")
	s.Require().NoError(err)
	s.Equal("pro", claimed.Plan)
	s.Equal(model.UserID("user-1"), claimed.UsedBy)
}

func (s *ServiceSuite) TestRedeemUnknownCode() {
	_, err := s.service.Redeem(s.ctx, "NOPE", "user-1")
	s.ErrorIs(err, model.ErrInviteNotFound)
}

func (s *ServiceSuite) TestRedeemEmptyCode() {
	_, err := s.service.Redeem(s.ctx, "", "user-1")
	s.ErrorIs(err, model.ErrInviteNotFound)
}

func (s *ServiceSuite) TestRedeemTwiceFails() {
	_, _ = s.service.Create(s.ctx, "ABC123", "pro")

	_, err := s.service.Redeem(s.ctx, "ABC123", "user-1")
	s.Require().NoError(err)

	_, err = s.service.Redeem(s.ctx, "ABC123", "user-2")
	s.ErrorIs(err, model.ErrInviteAlreadyUsed)
}

func (s *ServiceSuite) TestRedeemConcurrentIdentities() {
	_, _ = s.service.Create(s.ctx, "RACE01", "pro")

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			uid := model.UserID(fmt.Sprintf("user-%d", n))
			_, err := s.service.Redeem(s.ctx, "RACE01", uid)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			s.ErrorIs(err, model.ErrInviteAlreadyUsed)
		}
	}
	s.Equal(1, successes)
}

// Create tests

func (s *ServiceSuite) TestCreateWithExplicitCode() {
	created, err := s.service.Create(s.ctx, "WELCOME1", "free")
	s.Require().NoError(err)
	s.Equal("WELCOME1", created.Code)
	s.Equal("free", created.Plan)
	s.Equal(s.clock.CurrentTime, created.CreatedAt)
}

func (s *ServiceSuite) TestCreateDuplicateCodeFails() {
	_, _ = s.service.Create(s.ctx, "WELCOME1", "free")

	_, err := s.service.Create(s.ctx, "WELCOME1", "pro")
	s.ErrorIs(err, model.ErrInviteExists)
}

func (s *ServiceSuite) TestCreateGeneratesCode() {
	created, err := s.service.Create(s.ctx, "", "pro")
	s.Require().NoError(err)
	s.Len(created.Code, CodeLength)

	stored, err := s.service.Get(s.ctx, created.Code)
	s.Require().NoError(err)
	s.Equal("pro", stored.Plan)
}
