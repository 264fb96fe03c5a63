package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/apperrors"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	portsrepo "github.com/pennywiseapp/penny_wise_app/internal/core/ports/repositories"
	portssvc "github.com/pennywiseapp/penny_wise_app/internal/core/ports/services"
	"github.com/pennywiseapp/penny_wise_app/internal/core/schedule"
)

// scheduleService implements the ScheduleSvcFacade interface.
// Occurrences are never stored; every query projects them from the active
// obligations and then resolves statuses against persisted links.
type scheduleService struct {
	BaseService
	obligationRepo portsrepo.ObligationReader
	linkRepo       portsrepo.ObligationLinkReader
	now            func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(obligationRepo portsrepo.ObligationReader, linkRepo portsrepo.ObligationLinkReader) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		obligationRepo: obligationRepo,
		linkRepo:       linkRepo,
		now:            time.Now,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

func (s *scheduleService) GetScheduleForMonth(ctx context.Context, year int, month time.Month) ([]domain.Occurrence, error) {
	from, to := schedule.MonthRange(year, month)
	return s.GetScheduleForRange(ctx, from, to)
}

func (s *scheduleService) GetScheduleForRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Occurrence, error) {
	from = schedule.DateOnly(from)
	to = schedule.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("range end precedes start: %w", apperrors.ErrValidation)
	}

	obligations, err := s.obligationRepo.ListActiveObligations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load active obligations for schedule")
		return nil, fmt.Errorf("failed to load obligations: %w", err)
	}

	occurrences := schedule.GenerateForRange(obligations, from, to)
	if len(occurrences) == 0 {
		return occurrences, nil
	}

	links, err := s.linkRepo.ListLinksInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load links for schedule")
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	paid := make(map[string]bool, len(links))
	for _, link := range links {
		paid[link.OccurrenceID] = true
	}

	today := schedule.DateOnly(s.now())
	for i := range occurrences {
		switch {
		case paid[occurrences[i].OccurrenceID]:
			occurrences[i].Status = domain.OccurrencePaid
		case occurrences[i].DueDate.Before(today):
			occurrences[i].Status = domain.OccurrenceOverdue
		}
	}

	s.LogDebug(ctx, "Schedule projected",
		slog.Int("occurrences", len(occurrences)),
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")))
	return occurrences, nil
}
