package services

import (
	"context"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
)

// AutoMatchOutcome reports the result of one reconciliation run.
// Applied matches have already been persisted as links.
type AutoMatchOutcome struct {
	Applied   []domain.MatchResult
	ForReview []domain.MatchResult
}

// ReconciliationSvc drives matching between projected occurrences and
// imported bank transactions.
type ReconciliationSvc interface {
	// RunAutoMatch matches unpaid occurrences due within [from, to] against
	// transactions dated in the same window. High-confidence matches are
	// persisted as links; medium-confidence ones are returned for review.
	RunAutoMatch(ctx context.Context, from time.Time, to time.Time, userID string) (*AutoMatchOutcome, error)

	// Diagnose explains why a single occurrence did or did not match,
	// scoring every transaction in the window under relaxed gates.
	Diagnose(ctx context.Context, obligationID string, dueDate time.Time, from time.Time, to time.Time) (string, []recon.DiagnosticCandidate, error)

	// ConfirmMatch manually links a reviewed transaction to an occurrence.
	ConfirmMatch(ctx context.Context, obligationID string, dueDate time.Time, transactionID string, userID string) (*domain.ObligationLink, error)

	// Unlink removes the link covering an occurrence, returning both the
	// occurrence and its transaction to the unmatched pool.
	Unlink(ctx context.Context, occurrenceID string) error
}

// ReconciliationSvcFacade combines all reconciliation-related service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationSvc
}
