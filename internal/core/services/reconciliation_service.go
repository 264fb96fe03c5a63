package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	portsrepo "github.com/pennywiseapp/penny_wise_app/internal/core/ports/repositories"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
)

// reconciliationService implements the ReconciliationSvcFacade interface
type reconciliationService struct {
	BaseService
	obligationRepo  portsrepo.ObligationReader
	transactionRepo portsrepo.TransactionReader
	linkRepo        portsrepo.ObligationLinkRepositoryFacade
	matcher         *recon.Matcher
	now             func() time.Time
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	obligationRepo portsrepo.ObligationReader,
	transactionRepo portsrepo.TransactionReader,
	linkRepo portsrepo.ObligationLinkRepositoryFacade,
	matcher *recon.Matcher,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		obligationRepo:  obligationRepo,
		transactionRepo: transactionRepo,
		linkRepo:        linkRepo,
		matcher:         matcher,
		now:             time.Now,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) RunAutoMatch(ctx context.Context, from time.Time, to time.Time, userID string) (*portssvc.AutoMatchOutcome, error) {
	from = schedule.DateOnly(from)
	to = schedule.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("window end precedes start: %w", apperrors.ErrValidation)
	}

	occurrences, existingLinks, err := s.loadWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTransactionsInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for reconciliation")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	result := s.matcher.AutoMatch(occurrences, transactions, existingLinks)

	now := s.now()
	applied := make([]domain.MatchResult, 0, len(result.AutoApply))
	for _, match := range result.AutoApply {
		link := domain.ObligationLink{
			TransactionID: match.TransactionID,
			OccurrenceID:  match.Occurrence.OccurrenceID,
			ObligationID:  match.Occurrence.ObligationID,
			DueDate:       match.Occurrence.DueDate,
			Score:         match.Score,
			AutoApplied:   true,
			MatchedAt:     now,
			MatchedBy:     userID,
		}
		if err := s.linkRepo.ApplyLink(ctx, link); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// A concurrent pass got there first; the occurrence is
				// settled either way.
				s.LogDebug(ctx, "Link already applied, skipping",
					slog.String("occurrence_id", link.OccurrenceID),
					slog.String("transaction_id", link.TransactionID))
				continue
			}
			s.LogError(ctx, err, "Failed to persist link",
				slog.String("occurrence_id", link.OccurrenceID))
			return nil, fmt.Errorf("failed to persist link: %w", err)
		}
		applied = append(applied, match)
	}

	s.LogInfo(ctx, "Reconciliation pass completed",
		slog.Int("applied", len(applied)),
		slog.Int("for_review", len(result.ForReview)),
		slog.Int("transactions", len(transactions)),
		slog.Int("occurrences", len(occurrences)))

	return &portssvc.AutoMatchOutcome{
		Applied:   applied,
		ForReview: result.ForReview,
	}, nil
}

func (s *reconciliationService) Diagnose(ctx context.Context, obligationID string, dueDate time.Time, from time.Time, to time.Time) (string, []recon.DiagnosticCandidate, error) {
	from = schedule.DateOnly(from)
	to = schedule.DateOnly(to)
	if to.Before(from) {
		return "", nil, fmt.Errorf("window end precedes start: %w", apperrors.ErrValidation)
	}

	occ, err := s.buildOccurrence(ctx, obligationID, dueDate)
	if err != nil {
		return "", nil, err
	}

	transactions, err := s.transactionRepo.ListTransactionsInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for diagnosis")
		return "", nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	candidates := s.matcher.Diagnose(*occ, transactions)
	s.LogDebug(ctx, "Occurrence diagnosed",
		slog.String("occurrence_id", occ.OccurrenceID),
		slog.Int("candidates", len(candidates)))
	return occ.OccurrenceID, candidates, nil
}

func (s *reconciliationService) ConfirmMatch(ctx context.Context, obligationID string, dueDate time.Time, transactionID string, userID string) (*domain.ObligationLink, error) {
	occ, err := s.buildOccurrence(ctx, obligationID, dueDate)
	if err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for manual match",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.IsPending {
		return nil, fmt.Errorf("pending transactions cannot be linked: %w", apperrors.ErrValidation)
	}

	// Record the computed score when the pair would have matched; a manual
	// confirmation is allowed even when it would not.
	score := 0
	candidates := s.matcher.FindCandidates(*occ, []domain.Transaction{*txn}, nil)
	if len(candidates) > 0 {
		score = candidates[0].Score
	}

	link := domain.ObligationLink{
		TransactionID: transactionID,
		OccurrenceID:  occ.OccurrenceID,
		ObligationID:  occ.ObligationID,
		DueDate:       occ.DueDate,
		Score:         score,
		AutoApplied:   false,
		MatchedAt:     s.now(),
		MatchedBy:     userID,
	}
	if err := s.linkRepo.ApplyLink(ctx, link); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to persist manual link",
				slog.String("occurrence_id", link.OccurrenceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Manual match confirmed",
		slog.String("occurrence_id", link.OccurrenceID),
		slog.String("transaction_id", transactionID),
		slog.Int("score", score))
	return &link, nil
}

func (s *reconciliationService) Unlink(ctx context.Context, occurrenceID string) error {
	if _, err := s.linkRepo.FindLinkByOccurrenceID(ctx, occurrenceID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find link for removal",
				slog.String("occurrence_id", occurrenceID))
		}
		return err
	}

	if err := s.linkRepo.RemoveLink(ctx, occurrenceID); err != nil {
		s.LogError(ctx, err, "Failed to remove link",
			slog.String("occurrence_id", occurrenceID))
		return err
	}

	s.LogInfo(ctx, "Link removed",
		slog.String("occurrence_id", occurrenceID))
	return nil
}

// loadWindow projects the window's occurrences and marks those already
// settled, returning them alongside the existing links keyed by transaction.
func (s *reconciliationService) loadWindow(ctx context.Context, from, to time.Time) ([]domain.Occurrence, map[string]string, error) {
	obligations, err := s.obligationRepo.ListActiveObligations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load active obligations for reconciliation")
		return nil, nil, fmt.Errorf("failed to load obligations: %w", err)
	}

	occurrences := schedule.GenerateForRange(obligations, from, to)

	links, err := s.linkRepo.ListLinksInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load existing links")
		return nil, nil, fmt.Errorf("failed to load links: %w", err)
	}

	paid := make(map[string]bool, len(links))
	existing := make(map[string]string, len(links))
	for _, link := range links {
		paid[link.OccurrenceID] = true
		existing[link.TransactionID] = link.OccurrenceID
	}
	for i := range occurrences {
		if paid[occurrences[i].OccurrenceID] {
			occurrences[i].Status = domain.OccurrencePaid
		}
	}
	return occurrences, existing, nil
}

// buildOccurrence materialises the occurrence of an obligation due on a
// specific date, including its settled status.
func (s *reconciliationService) buildOccurrence(ctx context.Context, obligationID string, dueDate time.Time) (*domain.Occurrence, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find obligation",
				slog.String("obligation_id", obligationID))
		}
		return nil, err
	}

	due := schedule.DateOnly(dueDate)
	occ := domain.Occurrence{
		OccurrenceID:   schedule.OccurrenceID(obligation.ObligationID, due),
		ObligationID:   obligation.ObligationID,
		DueDate:        due,
		ExpectedAmount: obligation.ExpectedAmount,
		Status:         domain.OccurrenceDue,
		Obligation:     obligation,
	}

	if _, err := s.linkRepo.FindLinkByOccurrenceID(ctx, occ.OccurrenceID); err == nil {
		occ.Status = domain.OccurrencePaid
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}
	return &occ, nil
}
