package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
	"github.com/pennywiseapp/penny_wise_app/internal/core/services"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	mockObligationRepo *MockObligationRepository
	mockLinkRepo       *MockLinkRepository
	service            portssvc.ScheduleSvcFacade
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockLinkRepo = new(MockLinkRepository)
	suite.service = services.NewScheduleService(suite.mockObligationRepo, suite.mockLinkRepo)
}

func monthlyRent() domain.Obligation {
	return domain.Obligation{
		ObligationID:   "ob-rent",
		Name:           "Rent",
		ExpectedAmount: decimal.NewFromInt(950),
		DueDay:         1,
		Frequency:      domain.FrequencyMonthly,
		ActiveFrom:     schedule.DefaultActiveFrom,
		IsActive:       true,
	}
}

func (suite *ScheduleServiceTestSuite) TestGetScheduleForMonth_ProjectsOccurrences() {
	ctx := context.Background()
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{monthlyRent()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, from, to).Return([]domain.ObligationLink{}, nil).Once()

	occurrences, err := suite.service.GetScheduleForMonth(ctx, 2025, time.June)

	suite.Require().NoError(err)
	suite.Require().Len(occurrences, 1)
	suite.Equal("ob-rent-2025-06-01", occurrences[0].OccurrenceID)
	// June 2025 is in the past relative to any plausible test run.
	suite.Equal(domain.OccurrenceOverdue, occurrences[0].Status)

	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestGetScheduleForRange_MarksPaidFromLinks() {
	ctx := context.Background()
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)
	link := domain.ObligationLink{
		TransactionID: "txn-1",
		OccurrenceID:  "ob-rent-2025-06-01",
		ObligationID:  "ob-rent",
	}

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{monthlyRent()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, from, to).Return([]domain.ObligationLink{link}, nil).Once()

	occurrences, err := suite.service.GetScheduleForRange(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(occurrences, 2)
	suite.Equal(domain.OccurrencePaid, occurrences[0].Status)
	suite.Equal(domain.OccurrenceOverdue, occurrences[1].Status)
}

func (suite *ScheduleServiceTestSuite) TestGetScheduleForRange_FutureOccurrencesStayDue() {
	ctx := context.Background()
	from := time.Date(2125, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2125, time.January, 31, 0, 0, 0, 0, time.UTC)

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{monthlyRent()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, from, to).Return([]domain.ObligationLink{}, nil).Once()

	occurrences, err := suite.service.GetScheduleForRange(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(occurrences, 1)
	suite.Equal(domain.OccurrenceDue, occurrences[0].Status)
}

func (suite *ScheduleServiceTestSuite) TestGetScheduleForRange_InvertedRange() {
	ctx := context.Background()
	from := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	occurrences, err := suite.service.GetScheduleForRange(ctx, from, to)

	suite.Require().Error(err)
	suite.Nil(occurrences)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "ListActiveObligations", ctx)
}

func (suite *ScheduleServiceTestSuite) TestGetScheduleForRange_NoObligations() {
	ctx := context.Background()
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{}, nil).Once()

	occurrences, err := suite.service.GetScheduleForRange(ctx, from, to)

	suite.Require().NoError(err)
	suite.Empty(occurrences)
	// No occurrences means no link lookup.
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "ListLinksInRange", ctx, from, to)
}

func TestScheduleService(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
