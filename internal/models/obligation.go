package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation represents a recurring payment commitment row.
// Note: ActiveUntil uses a pointer for the nullable end date.
type Obligation struct {
	ObligationID    string          `db:"obligation_id"`
	Name            string          `db:"name"`
	ProviderHint    string          `db:"provider_hint"`
	ExpectedAmount  decimal.Decimal `db:"expected_amount"`
	DueDay          int             `db:"due_day"`
	Frequency       string          `db:"frequency"`
	ActiveFrom      time.Time       `db:"active_from"`
	ActiveUntil     *time.Time      `db:"active_until"` // Nullable
	IsActive        bool            `db:"is_active"`
	LinkedAccountID string          `db:"linked_account_id"` // Nullable
	AuditFields
}
