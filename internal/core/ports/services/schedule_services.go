package services

import (
	"context"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// ScheduleReaderSvc defines read operations over the projected payment schedule.
// Occurrences are computed on demand from active obligations, then annotated
// with their resolved status (paid, due, overdue) using stored links.
type ScheduleReaderSvc interface {
	// GetScheduleForMonth projects all occurrences falling within the given
	// calendar month, sorted by due date.
	GetScheduleForMonth(ctx context.Context, year int, month time.Month) ([]domain.Occurrence, error)

	// GetScheduleForRange projects all occurrences with due dates within
	// [from, to] inclusive, sorted by due date.
	GetScheduleForRange(ctx context.Context, from time.Time, to time.Time) ([]domain.Occurrence, error)
}

// ScheduleSvcFacade combines all schedule-related service interfaces
type ScheduleSvcFacade interface {
	ScheduleReaderSvc
}
