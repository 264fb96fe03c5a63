package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
	portsrepo "github.com/pennywiseapp/penny_wise_app/internal/core/ports/repositories"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/dto"
)

// obligationService implements the ObligationSvcFacade interface
type obligationService struct {
	BaseService
	obligationRepo portsrepo.ObligationRepositoryFacade
	accountRepo    portsrepo.AccountReader
}

// NewObligationService creates a new obligation service
func NewObligationService(repo portsrepo.ObligationRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ObligationSvcFacade {
	return &obligationService{
		obligationRepo: repo,
		accountRepo:    accountRepo,
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

func (s *obligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	if !req.Frequency.IsValid() {
		return nil, fmt.Errorf("unknown frequency %q: %w", req.Frequency, apperrors.ErrValidation)
	}
	if req.ExpectedAmount.IsNegative() || req.ExpectedAmount.IsZero() {
		return nil, fmt.Errorf("expected amount must be positive: %w", apperrors.ErrValidation)
	}

	if req.LinkedAccountID != "" && s.accountRepo != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, req.LinkedAccountID); err != nil {
			s.LogError(ctx, err, "Linked account not found",
				slog.String("account_id", req.LinkedAccountID))
			return nil, fmt.Errorf("invalid linked account: %w", err)
		}
	}

	activeFrom := schedule.DefaultActiveFrom
	if req.ActiveFrom != nil {
		activeFrom = schedule.DateOnly(*req.ActiveFrom)
	}
	var activeUntil *time.Time
	if req.ActiveUntil != nil {
		until := schedule.DateOnly(*req.ActiveUntil)
		if until.Before(activeFrom) {
			return nil, fmt.Errorf("activeUntil precedes activeFrom: %w", apperrors.ErrValidation)
		}
		activeUntil = &until
	}

	now := time.Now()
	obligation := domain.Obligation{
		ObligationID:    uuid.NewString(),
		Name:            req.Name,
		ProviderHint:    req.ProviderHint,
		ExpectedAmount:  req.ExpectedAmount,
		DueDay:          req.DueDay,
		Frequency:       req.Frequency,
		ActiveFrom:      activeFrom,
		ActiveUntil:     activeUntil,
		IsActive:        true,
		LinkedAccountID: req.LinkedAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		s.LogError(ctx, err, "Failed to save obligation",
			slog.String("obligation_id", obligation.ObligationID))
		return nil, err
	}

	s.LogInfo(ctx, "Obligation created successfully",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("frequency", string(obligation.Frequency)))
	return &obligation, nil
}

func (s *obligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find obligation by ID",
				slog.String("obligation_id", obligationID))
		}
		return nil, err
	}
	return obligation, nil
}

func (s *obligationService) ListObligations(ctx context.Context, params dto.ListObligationsParams) ([]domain.Obligation, error) {
	obligations, err := s.obligationRepo.ListObligations(ctx, params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list obligations",
			slog.Int("limit", params.Limit),
			slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	if obligations == nil {
		return []domain.Obligation{}, nil
	}
	return obligations, nil
}

func (s *obligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error) {
	obligation, err := s.GetObligationByID(ctx, obligationID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		obligation.Name = *req.Name
		updated = true
	}
	if req.ProviderHint != nil {
		obligation.ProviderHint = *req.ProviderHint
		updated = true
	}
	if req.ExpectedAmount != nil {
		if req.ExpectedAmount.IsNegative() || req.ExpectedAmount.IsZero() {
			return nil, fmt.Errorf("expected amount must be positive: %w", apperrors.ErrValidation)
		}
		obligation.ExpectedAmount = *req.ExpectedAmount
		updated = true
	}
	if req.DueDay != nil {
		obligation.DueDay = *req.DueDay
		updated = true
	}
	if req.Frequency != nil {
		if !req.Frequency.IsValid() {
			return nil, fmt.Errorf("unknown frequency %q: %w", *req.Frequency, apperrors.ErrValidation)
		}
		obligation.Frequency = *req.Frequency
		updated = true
	}
	if req.ActiveUntil != nil {
		until := schedule.DateOnly(*req.ActiveUntil)
		if until.Before(obligation.ActiveFrom) {
			return nil, fmt.Errorf("activeUntil precedes activeFrom: %w", apperrors.ErrValidation)
		}
		obligation.ActiveUntil = &until
		updated = true
	}
	if req.LinkedAccountID != nil {
		if *req.LinkedAccountID != "" && s.accountRepo != nil {
			if _, err := s.accountRepo.FindAccountByID(ctx, *req.LinkedAccountID); err != nil {
				return nil, fmt.Errorf("invalid linked account: %w", err)
			}
		}
		obligation.LinkedAccountID = *req.LinkedAccountID
		updated = true
	}
	if req.IsActive != nil {
		obligation.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for obligation update",
			slog.String("obligation_id", obligationID))
		return obligation, nil
	}

	now := time.Now()
	obligation.LastUpdatedAt = now
	obligation.LastUpdatedBy = userID

	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		s.LogError(ctx, err, "Failed to update obligation",
			slog.String("obligation_id", obligationID))
		return nil, err
	}

	s.LogInfo(ctx, "Obligation updated successfully",
		slog.String("obligation_id", obligation.ObligationID))
	return obligation, nil
}

func (s *obligationService) DeactivateObligation(ctx context.Context, obligationID string, userID string) error {
	if _, err := s.GetObligationByID(ctx, obligationID); err != nil {
		return err
	}

	now := time.Now()
	if err := s.obligationRepo.DeactivateObligation(ctx, obligationID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate obligation",
			slog.String("obligation_id", obligationID))
		return err
	}

	s.LogInfo(ctx, "Obligation deactivated successfully",
		slog.String("obligation_id", obligationID))
	return nil
}
