package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
	"github.com/pennywiseapp/penny_wise_app/internal/dto"
	"github.com/pennywiseapp/penny_wise_app/internal/handlers"
	"github.com/pennywiseapp/penny_wise_app/internal/platform/config"
)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) RunAutoMatch(ctx context.Context, from, to time.Time, userID string) (*portssvc.AutoMatchOutcome, error) {
	args := m.Called(ctx, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AutoMatchOutcome), args.Error(1)
}

func (m *MockReconciliationService) Diagnose(ctx context.Context, obligationID string, dueDate, from, to time.Time) (string, []recon.DiagnosticCandidate, error) {
	args := m.Called(ctx, obligationID, dueDate, from, to)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]recon.DiagnosticCandidate), args.Error(2)
}

func (m *MockReconciliationService) ConfirmMatch(ctx context.Context, obligationID string, dueDate time.Time, transactionID, userID string) (*domain.ObligationLink, error) {
	args := m.Called(ctx, obligationID, dueDate, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ObligationLink), args.Error(1)
}

func (m *MockReconciliationService) Unlink(ctx context.Context, occurrenceID string) error {
	args := m.Called(ctx, occurrenceID)
	return args.Error(0)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Test Suite Setup ---

type ReconciliationHandlerTestSuite struct {
	suite.Suite
	mockService *MockReconciliationService
	router      *gin.Engine
}

func (suite *ReconciliationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidators())

	suite.mockService = new(MockReconciliationService)
	suite.router = gin.New()

	cfg := &config.Config{RateLimit: "100-M"}
	container := &portssvc.ServiceContainer{Reconciliation: suite.mockService}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

// --- Test Cases ---

func (suite *ReconciliationHandlerTestSuite) TestAutoMatch_Success() {
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	outcome := &portssvc.AutoMatchOutcome{
		Applied: []domain.MatchResult{{
			Occurrence: domain.Occurrence{
				OccurrenceID:   "ob-1-2025-06-15",
				ObligationID:   "ob-1",
				DueDate:        time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
				ExpectedAmount: decimal.NewFromFloat(10.99),
				Status:         domain.OccurrenceDue,
			},
			TransactionID: "txn-1",
			Score:         110,
			Confidence:    domain.ConfidenceHigh,
			Reasons:       []string{"exact amount match"},
		}},
		ForReview: []domain.MatchResult{},
	}

	suite.mockService.On("RunAutoMatch", mock.Anything, from, to, "local").Return(outcome, nil).Once()

	body, _ := json.Marshal(dto.AutoMatchRequest{From: from, To: to})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reconciliation/automatch", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AutoMatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Applied, 1)
	suite.Empty(resp.ForReview)
	suite.Equal("txn-1", resp.Applied[0].TransactionID)
	suite.Equal(110, resp.Applied[0].Score)
	suite.Equal(domain.ConfidenceHigh, resp.Applied[0].Confidence)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestAutoMatch_MissingWindow() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reconciliation/automatch", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "RunAutoMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationHandlerTestSuite) TestDiagnose_Success() {
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	candidates := []recon.DiagnosticCandidate{{
		TransactionID: "txn-1",
		Score:         70,
		Reasons:       []string{"exact amount match", "same-day date match"},
	}}

	suite.mockService.On("Diagnose", mock.Anything, "ob-1", dueDate, from, to).
		Return("ob-1-2025-06-15", candidates, nil).Once()

	body, _ := json.Marshal(dto.DiagnoseRequest{ObligationID: "ob-1", DueDate: dueDate, From: from, To: to})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reconciliation/diagnose", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DiagnoseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ob-1-2025-06-15", resp.OccurrenceID)
	suite.Require().Len(resp.Candidates, 1)
	suite.Equal("txn-1", resp.Candidates[0].TransactionID)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestDiagnose_ObligationNotFound() {
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	suite.mockService.On("Diagnose", mock.Anything, "ob-missing", dueDate, from, to).
		Return("", nil, apperrors.ErrNotFound).Once()

	body, _ := json.Marshal(dto.DiagnoseRequest{ObligationID: "ob-missing", DueDate: dueDate, From: from, To: to})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reconciliation/diagnose", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReconciliationHandlerTestSuite) TestConfirmMatch_Success() {
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	link := &domain.ObligationLink{
		TransactionID: "txn-1",
		OccurrenceID:  "ob-1-2025-06-15",
		ObligationID:  "ob-1",
		DueDate:       dueDate,
		Score:         70,
		AutoApplied:   false,
		MatchedBy:     "local",
		MatchedAt:     time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC),
	}

	suite.mockService.On("ConfirmMatch", mock.Anything, "ob-1", dueDate, "txn-1", "local").Return(link, nil).Once()

	body, _ := json.Marshal(dto.ConfirmMatchRequest{ObligationID: "ob-1", DueDate: dueDate, TransactionID: "txn-1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reconciliation/links", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.LinkResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ob-1-2025-06-15", resp.OccurrenceID)
	suite.Equal("2025-06-15", resp.DueDate)
	suite.False(resp.AutoApplied)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestConfirmMatch_AlreadyLinked() {
	dueDate := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	suite.mockService.On("ConfirmMatch", mock.Anything, "ob-1", dueDate, "txn-taken", "local").
		Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(dto.ConfirmMatchRequest{ObligationID: "ob-1", DueDate: dueDate, TransactionID: "txn-taken"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reconciliation/links", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ReconciliationHandlerTestSuite) TestUnlink_Success() {
	suite.mockService.On("Unlink", mock.Anything, "ob-1-2025-06-15").Return(nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/reconciliation/links/ob-1-2025-06-15", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestUnlink_NotFound() {
	suite.mockService.On("Unlink", mock.Anything, "ob-9-2025-01-01").Return(apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/reconciliation/links/ob-9-2025-01-01", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestReconciliationHandler(t *testing.T) {
	suite.Run(t, new(ReconciliationHandlerTestSuite))
}
