package models

import "time"

// ObligationLink represents an applied match between a transaction and one
// occurrence of an obligation. The table enforces uniqueness on both sides.
type ObligationLink struct {
	TransactionID string    `db:"transaction_id"`
	OccurrenceID  string    `db:"occurrence_id"`
	ObligationID  string    `db:"obligation_id"`
	DueDate       time.Time `db:"due_date"`
	Score         int       `db:"score"`
	AutoApplied   bool      `db:"auto_applied"`
	MatchedAt     time.Time `db:"matched_at"`
	MatchedBy     string    `db:"matched_by"`
}
