package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// DefaultActiveFrom is the start date assumed for obligations that do not
// carry an explicit one.
var DefaultActiveFrom = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// OccurrenceID builds the deterministic identity of an occurrence. The same
// obligation and due date always produce the same ID, which keeps repeated
// generation calls idempotent.
func OccurrenceID(obligationID string, dueDate time.Time) string {
	return fmt.Sprintf("%s-%s", obligationID, dueDate.Format("2006-01-02"))
}

// Generate produces every expected due date of ob inside [rangeStart,
// rangeEnd], ordered ascending. Both bounds are inclusive. It is a pure
// function of its inputs: calling it twice yields identical output.
//
// Degenerate input fails soft with an empty list: inactive obligations, an
// inverted range, or a range entirely outside the active period all yield
// zero occurrences.
func Generate(ob domain.Obligation, rangeStart, rangeEnd time.Time) []domain.Occurrence {
	occurrences := []domain.Occurrence{}

	if !ob.IsActive {
		return occurrences
	}

	rangeStart = DateOnly(rangeStart)
	rangeEnd = DateOnly(rangeEnd)
	if rangeEnd.Before(rangeStart) {
		return occurrences
	}

	activeFrom := DefaultActiveFrom
	if !ob.ActiveFrom.IsZero() {
		activeFrom = DateOnly(ob.ActiveFrom)
	}
	if rangeEnd.Before(activeFrom) {
		return occurrences
	}

	var activeUntil *time.Time
	if ob.ActiveUntil != nil {
		u := DateOnly(*ob.ActiveUntil)
		if u.Before(rangeStart) {
			return occurrences
		}
		activeUntil = &u
	}

	// One shared back-reference per call; occurrences are value objects.
	obRef := ob

	emit := func(due time.Time) {
		occurrences = append(occurrences, domain.Occurrence{
			OccurrenceID:   OccurrenceID(ob.ObligationID, due),
			ObligationID:   ob.ObligationID,
			DueDate:        due,
			ExpectedAmount: ob.ExpectedAmount,
			Status:         domain.OccurrenceDue,
			Obligation:     &obRef,
		})
	}

	switch {
	case ob.Frequency.IsCalendarAnchored():
		generateCalendarAnchored(ob, rangeStart, rangeEnd, activeFrom, activeUntil, emit)
	case ob.Frequency.DayStep() > 0:
		generateIntervalStepping(ob, rangeStart, rangeEnd, activeFrom, activeUntil, emit)
	}
	// Unknown frequency: fail soft with zero occurrences.

	return occurrences
}

// generateIntervalStepping handles the weekly family: the cadence is a fixed
// day interval phase-anchored at activeFrom. Instead of walking week by week
// from a potentially very old start date, it jumps arithmetically to the
// first candidate on or after rangeStart.
func generateIntervalStepping(ob domain.Obligation, rangeStart, rangeEnd, activeFrom time.Time, activeUntil *time.Time, emit func(time.Time)) {
	step := ob.Frequency.DayStep()

	current := activeFrom
	if current.Before(rangeStart) {
		gap := DaysBetween(current, rangeStart)
		intervals := gap / step
		if gap%step != 0 {
			intervals++
		}
		current = current.AddDate(0, 0, intervals*step)
	}

	// current >= activeFrom and >= rangeStart by construction; the loop
	// bound on rangeEnd guarantees termination for open-ended obligations.
	for !current.After(rangeEnd) {
		if activeUntil != nil && current.After(*activeUntil) {
			return
		}
		emit(current)
		current = current.AddDate(0, 0, step)
	}
}

// generateCalendarAnchored handles the monthly family: the due date in a
// target month is the due day clamped to that month's length (never rolled
// into the next month). The anchor is the month containing rangeStart;
// stepped dates before activeFrom or rangeStart are skipped, not terminal.
func generateCalendarAnchored(ob domain.Obligation, rangeStart, rangeEnd, activeFrom time.Time, activeUntil *time.Time, emit func(time.Time)) {
	monthStep := ob.Frequency.MonthStep()
	year, month := rangeStart.Year(), rangeStart.Month()

	for {
		due := ClampDay(year, month, ob.DueDay)
		if due.After(rangeEnd) {
			return
		}
		if activeUntil != nil && due.After(*activeUntil) {
			return
		}
		if !due.Before(rangeStart) && !due.Before(activeFrom) {
			emit(due)
		}
		year, month = AddMonths(year, month, monthStep)
	}
}

// GenerateForRange runs Generate over every obligation and returns the
// combined list sorted ascending by due date, tie-broken by obligation ID
// for deterministic output.
func GenerateForRange(obligations []domain.Obligation, rangeStart, rangeEnd time.Time) []domain.Occurrence {
	occurrences := []domain.Occurrence{}
	for _, ob := range obligations {
		occurrences = append(occurrences, Generate(ob, rangeStart, rangeEnd)...)
	}
	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].DueDate.Equal(occurrences[j].DueDate) {
			return occurrences[i].DueDate.Before(occurrences[j].DueDate)
		}
		return occurrences[i].ObligationID < occurrences[j].ObligationID
	})
	return occurrences
}

// GenerateForMonth is a convenience wrapper over GenerateForRange covering
// one calendar month.
func GenerateForMonth(obligations []domain.Obligation, year int, month time.Month) []domain.Occurrence {
	start, end := MonthRange(year, month)
	return GenerateForRange(obligations, start, end)
}
