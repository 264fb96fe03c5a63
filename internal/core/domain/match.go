package domain

import "time"

// Confidence classifies a candidate's score. Low-confidence candidates are
// dropped inside the matcher and never surface here.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
)

// MatchResult is one scored transaction candidate for one occurrence.
type MatchResult struct {
	Occurrence    Occurrence `json:"occurrence"`
	TransactionID string     `json:"transactionID"`
	Score         int        `json:"score"`
	Confidence    Confidence `json:"confidence"`
	Reasons       []string   `json:"reasons"` // contributing factors, in computed order
}

// ObligationLink is a persisted, applied match between a transaction and a
// specific occurrence of an obligation. Uniqueness on both transaction and
// occurrence is enforced by the storage layer.
type ObligationLink struct {
	TransactionID string    `json:"transactionID"`
	OccurrenceID  string    `json:"occurrenceID"`
	ObligationID  string    `json:"obligationID"`
	DueDate       time.Time `json:"dueDate"`
	Score         int       `json:"score"`
	AutoApplied   bool      `json:"autoApplied"`
	MatchedAt     time.Time `json:"matchedAt"`
	MatchedBy     string    `json:"matchedBy"`
}
