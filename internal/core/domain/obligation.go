package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency defines how often a recurring obligation falls due.
type Frequency string

const (
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyFortnightly Frequency = "FORTNIGHTLY"
	FrequencyMonthly     Frequency = "MONTHLY"
	FrequencyQuarterly   Frequency = "QUARTERLY"
	FrequencyBiannual    Frequency = "BIANNUAL" // every 6 months
	FrequencyYearly      Frequency = "YEARLY"
)

// KnownFrequencies lists every recognised frequency value.
var KnownFrequencies = []Frequency{
	FrequencyWeekly,
	FrequencyFortnightly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyBiannual,
	FrequencyYearly,
}

// IsValid reports whether f is one of the recognised frequency values.
func (f Frequency) IsValid() bool {
	for _, k := range KnownFrequencies {
		if f == k {
			return true
		}
	}
	return false
}

// IsCalendarAnchored reports whether f steps by whole calendar months
// (anchored to a due day) rather than by a fixed day interval.
func (f Frequency) IsCalendarAnchored() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyBiannual, FrequencyYearly:
		return true
	}
	return false
}

// MonthStep returns the month increment for calendar-anchored frequencies,
// or 0 for interval-stepping ones.
func (f Frequency) MonthStep() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyBiannual:
		return 6
	case FrequencyYearly:
		return 12
	}
	return 0
}

// DayStep returns the day interval for interval-stepping frequencies,
// or 0 for calendar-anchored ones.
func (f Frequency) DayStep() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyFortnightly:
		return 14
	}
	return 0
}

// Obligation is the declarative definition of a recurring bill. It is an
// immutable input to occurrence generation; only the CRUD layer mutates it.
type Obligation struct {
	ObligationID    string          `json:"obligationID"`
	Name            string          `json:"name"`
	ProviderHint    string          `json:"providerHint"`
	ExpectedAmount  decimal.Decimal `json:"expectedAmount"`
	DueDay          int             `json:"dueDay"` // 1-31, clamped per month
	Frequency       Frequency       `json:"frequency"`
	ActiveFrom      time.Time       `json:"activeFrom"`
	ActiveUntil     *time.Time      `json:"activeUntil"` // nil = open-ended
	IsActive        bool            `json:"isActive"`
	LinkedAccountID string          `json:"linkedAccountID"` // optional account hint
	AuditFields
}
