package services

import (
	"context"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/pennywiseapp/penny_wise_app/internal/dto"
)

// ObligationReaderSvc defines read operations for obligation data
type ObligationReaderSvc interface {
	// GetObligationByID retrieves a specific obligation by its unique identifier.
	GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves a paginated list of obligations.
	ListObligations(ctx context.Context, params dto.ListObligationsParams) ([]domain.Obligation, error)
}

// ObligationWriterSvc defines write operations for obligation data
type ObligationWriterSvc interface {
	// CreateObligation persists a new recurring obligation.
	CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error)

	// UpdateObligation updates an existing obligation's details.
	UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error)

	// DeactivateObligation marks an obligation as inactive so it stops
	// producing scheduled occurrences.
	DeactivateObligation(ctx context.Context, obligationID string, userID string) error
}

// ObligationSvcFacade combines all obligation-related service interfaces
type ObligationSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
}
