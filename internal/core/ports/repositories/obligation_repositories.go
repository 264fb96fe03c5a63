package repositories

import (
	"context"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// ObligationReader defines read operations for obligation data
type ObligationReader interface {
	// FindObligationByID retrieves a specific obligation by its unique identifier.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves a paginated list of obligations, optionally
	// restricted to active ones.
	ListObligations(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Obligation, error)

	// ListActiveObligations retrieves every active obligation, for schedule
	// generation and reconciliation passes.
	ListActiveObligations(ctx context.Context) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligation data
type ObligationWriter interface {
	// SaveObligation persists a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// UpdateObligation updates an existing obligation's details.
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error

	// DeactivateObligation marks an obligation as inactive.
	DeactivateObligation(ctx context.Context, obligationID string, userID string, now time.Time) error
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}
