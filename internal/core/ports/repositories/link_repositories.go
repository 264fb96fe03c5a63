package repositories

import (
	"context"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// ObligationLinkReader defines read operations for obligation link data
type ObligationLinkReader interface {
	// FindLinkByOccurrenceID retrieves the link covering a specific occurrence, if any.
	FindLinkByOccurrenceID(ctx context.Context, occurrenceID string) (*domain.ObligationLink, error)

	// FindLinkByTransactionID retrieves the link a transaction participates in, if any.
	FindLinkByTransactionID(ctx context.Context, transactionID string) (*domain.ObligationLink, error)

	// ListLinksInRange retrieves all links whose occurrence due date falls within [from, to].
	ListLinksInRange(ctx context.Context, from time.Time, to time.Time) ([]domain.ObligationLink, error)
}

// ObligationLinkWriter defines write operations for obligation link data
type ObligationLinkWriter interface {
	// ApplyLink persists a link between a transaction and an occurrence.
	// Applying the same link twice is a no-op; conflicting links for an
	// already-claimed transaction or occurrence return ErrDuplicate.
	ApplyLink(ctx context.Context, link domain.ObligationLink) error

	// RemoveLink deletes the link covering an occurrence, freeing both sides.
	RemoveLink(ctx context.Context, occurrenceID string) error
}

// ObligationLinkRepositoryFacade combines all link-related repository interfaces
type ObligationLinkRepositoryFacade interface {
	ObligationLinkReader
	ObligationLinkWriter
}
