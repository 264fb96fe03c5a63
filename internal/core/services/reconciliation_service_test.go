package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	portsrepo "github.com/pennywiseapp/penny_wise_app/internal/core/ports/repositories"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
	"github.com/pennywiseapp/penny_wise_app/internal/core/services"
)

// MockLinkRepository is a mock type for the ObligationLinkRepositoryFacade interface
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) FindLinkByOccurrenceID(ctx context.Context, occurrenceID string) (*domain.ObligationLink, error) {
	args := m.Called(ctx, occurrenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObligationLink), args.Error(1)
}

func (m *MockLinkRepository) FindLinkByTransactionID(ctx context.Context, transactionID string) (*domain.ObligationLink, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObligationLink), args.Error(1)
}

func (m *MockLinkRepository) ListLinksInRange(ctx context.Context, from time.Time, to time.Time) ([]domain.ObligationLink, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ObligationLink), args.Error(1)
}

func (m *MockLinkRepository) ApplyLink(ctx context.Context, link domain.ObligationLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) RemoveLink(ctx context.Context, occurrenceID string) error {
	args := m.Called(ctx, occurrenceID)
	return args.Error(0)
}

var _ portsrepo.ObligationLinkRepositoryFacade = (*MockLinkRepository)(nil)

// --- Test Suite Setup ---

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockObligationRepo  *MockObligationRepository
	mockTransactionRepo *MockTransactionRepository
	mockLinkRepo        *MockLinkRepository
	service             portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockLinkRepo = new(MockLinkRepository)
	matcher := recon.NewMatcher(recon.DefaultConfig(), recon.NewResolver(recon.DefaultAliasDictionary()))
	suite.service = services.NewReconciliationService(
		suite.mockObligationRepo,
		suite.mockTransactionRepo,
		suite.mockLinkRepo,
		matcher,
	)
}

func netflixObligation() domain.Obligation {
	return domain.Obligation{
		ObligationID:    "ob-netflix",
		Name:            "Netflix",
		ProviderHint:    "netflix",
		ExpectedAmount:  decimal.NewFromFloat(10.99),
		DueDay:          15,
		Frequency:       domain.FrequencyMonthly,
		ActiveFrom:      schedule.DefaultActiveFrom,
		IsActive:        true,
		LinkedAccountID: "acc-1",
	}
}

func netflixTransaction(id string, day int) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		Amount:          decimal.NewFromFloat(10.99),
		MerchantText:    "NETFLIX.COM",
		DescriptionText: "NETFLIX.COM AMSTERDAM",
		Date:            time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC),
		AccountID:       "acc-1",
	}
}

var (
	juneFrom = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	juneTo   = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
)

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestRunAutoMatch_PersistsHighConfidenceLink() {
	ctx := context.Background()

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{netflixObligation()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, juneFrom, juneTo).Return([]domain.ObligationLink{}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsInRange", ctx, juneFrom, juneTo).
		Return([]domain.Transaction{netflixTransaction("txn-1", 15)}, nil).Once()
	suite.mockLinkRepo.On("ApplyLink", ctx, mock.MatchedBy(func(link domain.ObligationLink) bool {
		return link.TransactionID == "txn-1" &&
			link.OccurrenceID == "ob-netflix-2025-06-15" &&
			link.AutoApplied &&
			link.MatchedBy == "user-1"
	})).Return(nil).Once()

	outcome, err := suite.service.RunAutoMatch(ctx, juneFrom, juneTo, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(outcome.Applied, 1)
	suite.Empty(outcome.ForReview)
	suite.Equal(domain.ConfidenceHigh, outcome.Applied[0].Confidence)
	suite.Equal("txn-1", outcome.Applied[0].TransactionID)

	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRunAutoMatch_MediumGoesToReviewUnpersisted() {
	ctx := context.Background()

	// Right amount and date but no provider or account evidence: the
	// transaction text gives the resolver nothing and the account differs.
	txn := domain.Transaction{
		TransactionID:   "txn-2",
		Amount:          decimal.NewFromFloat(10.99),
		MerchantText:    "CARD PAYMENT",
		DescriptionText: "CARD PAYMENT 4455",
		Date:            time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		AccountID:       "acc-2",
	}

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{netflixObligation()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, juneFrom, juneTo).Return([]domain.ObligationLink{}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsInRange", ctx, juneFrom, juneTo).
		Return([]domain.Transaction{txn}, nil).Once()

	outcome, err := suite.service.RunAutoMatch(ctx, juneFrom, juneTo, "user-1")

	suite.Require().NoError(err)
	suite.Empty(outcome.Applied)
	suite.Require().Len(outcome.ForReview, 1)
	suite.Equal(domain.ConfidenceMedium, outcome.ForReview[0].Confidence)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "ApplyLink", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRunAutoMatch_ExistingLinkSkipsOccurrence() {
	ctx := context.Background()
	existing := domain.ObligationLink{
		TransactionID: "txn-1",
		OccurrenceID:  "ob-netflix-2025-06-15",
		ObligationID:  "ob-netflix",
	}

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{netflixObligation()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, juneFrom, juneTo).Return([]domain.ObligationLink{existing}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsInRange", ctx, juneFrom, juneTo).
		Return([]domain.Transaction{netflixTransaction("txn-1", 15)}, nil).Once()

	outcome, err := suite.service.RunAutoMatch(ctx, juneFrom, juneTo, "user-1")

	suite.Require().NoError(err)
	suite.Empty(outcome.Applied)
	suite.Empty(outcome.ForReview)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "ApplyLink", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestRunAutoMatch_DuplicateLinkIsSkippedNotFatal() {
	ctx := context.Background()

	suite.mockObligationRepo.On("ListActiveObligations", ctx).Return([]domain.Obligation{netflixObligation()}, nil).Once()
	suite.mockLinkRepo.On("ListLinksInRange", ctx, juneFrom, juneTo).Return([]domain.ObligationLink{}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsInRange", ctx, juneFrom, juneTo).
		Return([]domain.Transaction{netflixTransaction("txn-1", 15)}, nil).Once()
	suite.mockLinkRepo.On("ApplyLink", ctx, mock.AnythingOfType("domain.ObligationLink")).Return(apperrors.ErrDuplicate).Once()

	outcome, err := suite.service.RunAutoMatch(ctx, juneFrom, juneTo, "user-1")

	suite.Require().NoError(err)
	suite.Empty(outcome.Applied)
}

func (suite *ReconciliationServiceTestSuite) TestRunAutoMatch_InvertedWindow() {
	ctx := context.Background()

	outcome, err := suite.service.RunAutoMatch(ctx, juneTo, juneFrom, "user-1")

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestDiagnose_ReturnsCandidates() {
	ctx := context.Background()
	obligation := netflixObligation()
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	suite.mockObligationRepo.On("FindObligationByID", ctx, "ob-netflix").Return(&obligation, nil).Once()
	suite.mockLinkRepo.On("FindLinkByOccurrenceID", ctx, "ob-netflix-2025-06-15").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("ListTransactionsInRange", ctx, juneFrom, juneTo).
		Return([]domain.Transaction{netflixTransaction("txn-1", 15)}, nil).Once()

	occurrenceID, candidates, err := suite.service.Diagnose(ctx, "ob-netflix", dueDate, juneFrom, juneTo)

	suite.Require().NoError(err)
	suite.Equal("ob-netflix-2025-06-15", occurrenceID)
	suite.Require().Len(candidates, 1)
	suite.Equal("txn-1", candidates[0].TransactionID)
	suite.Equal(110, candidates[0].Score)
}

func (suite *ReconciliationServiceTestSuite) TestConfirmMatch_PersistsManualLink() {
	ctx := context.Background()
	obligation := netflixObligation()
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	txn := netflixTransaction("txn-9", 18)

	suite.mockObligationRepo.On("FindObligationByID", ctx, "ob-netflix").Return(&obligation, nil).Once()
	suite.mockLinkRepo.On("FindLinkByOccurrenceID", ctx, "ob-netflix-2025-06-15").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, "txn-9").Return(&txn, nil).Once()
	suite.mockLinkRepo.On("ApplyLink", ctx, mock.MatchedBy(func(link domain.ObligationLink) bool {
		return link.TransactionID == "txn-9" &&
			link.OccurrenceID == "ob-netflix-2025-06-15" &&
			!link.AutoApplied &&
			link.MatchedBy == "user-1"
	})).Return(nil).Once()

	link, err := suite.service.ConfirmMatch(ctx, "ob-netflix", dueDate, "txn-9", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(link)
	suite.False(link.AutoApplied)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestConfirmMatch_RejectsPendingTransaction() {
	ctx := context.Background()
	obligation := netflixObligation()
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	txn := netflixTransaction("txn-9", 15)
	txn.IsPending = true

	suite.mockObligationRepo.On("FindObligationByID", ctx, "ob-netflix").Return(&obligation, nil).Once()
	suite.mockLinkRepo.On("FindLinkByOccurrenceID", ctx, "ob-netflix-2025-06-15").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, "txn-9").Return(&txn, nil).Once()

	link, err := suite.service.ConfirmMatch(ctx, "ob-netflix", dueDate, "txn-9", "user-1")

	suite.Require().Error(err)
	suite.Nil(link)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "ApplyLink", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestUnlink_Success() {
	ctx := context.Background()
	link := &domain.ObligationLink{OccurrenceID: "ob-netflix-2025-06-15", TransactionID: "txn-1"}

	suite.mockLinkRepo.On("FindLinkByOccurrenceID", ctx, "ob-netflix-2025-06-15").Return(link, nil).Once()
	suite.mockLinkRepo.On("RemoveLink", ctx, "ob-netflix-2025-06-15").Return(nil).Once()

	err := suite.service.Unlink(ctx, "ob-netflix-2025-06-15")

	suite.Require().NoError(err)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestUnlink_NotFound() {
	ctx := context.Background()

	suite.mockLinkRepo.On("FindLinkByOccurrenceID", ctx, "ob-gone").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Unlink(ctx, "ob-gone")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "RemoveLink", ctx, "ob-gone")
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
