package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OccurrenceStatus is the lifecycle state of a single expected due date.
type OccurrenceStatus string

const (
	OccurrenceDue     OccurrenceStatus = "DUE"
	OccurrencePaid    OccurrenceStatus = "PAID"
	OccurrenceOverdue OccurrenceStatus = "OVERDUE"
	OccurrenceSkipped OccurrenceStatus = "SKIPPED"
)

// Occurrence is one concrete expected due date derived from an Obligation.
// It is a value object regenerated on demand, never stored as a mutable
// entity. The generator always emits status DUE; downstream logic upgrades
// it after cross-referencing existing links.
type Occurrence struct {
	OccurrenceID   string           `json:"occurrenceID"` // "{obligationID}-{YYYY-MM-DD}"
	ObligationID   string           `json:"obligationID"`
	DueDate        time.Time        `json:"dueDate"`
	ExpectedAmount decimal.Decimal  `json:"expectedAmount"`
	Status         OccurrenceStatus `json:"status"`
	Obligation     *Obligation      `json:"-"` // back-reference for matching
}
