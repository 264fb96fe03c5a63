package dto

import (
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
)

// AutoMatchRequest bounds a reconciliation pass to a date window.
type AutoMatchRequest struct {
	From time.Time `json:"from" binding:"required"`
	To   time.Time `json:"to" binding:"required"`
}

// MatchResponse defines the data returned for one scored match.
type MatchResponse struct {
	Occurrence    OccurrenceResponse `json:"occurrence"`
	TransactionID string             `json:"transactionID"`
	Score         int                `json:"score"`
	Confidence    domain.Confidence  `json:"confidence"`
	Reasons       []string           `json:"reasons"`
}

// ToMatchResponse converts a domain.MatchResult to MatchResponse DTO
func ToMatchResponse(mr domain.MatchResult) MatchResponse {
	return MatchResponse{
		Occurrence:    ToOccurrenceResponse(mr.Occurrence),
		TransactionID: mr.TransactionID,
		Score:         mr.Score,
		Confidence:    mr.Confidence,
		Reasons:       mr.Reasons,
	}
}

// AutoMatchResponse reports the outcome of a reconciliation pass.
type AutoMatchResponse struct {
	Applied   []MatchResponse `json:"applied"`
	ForReview []MatchResponse `json:"forReview"`
}

// ToAutoMatchResponse converts matcher output to the response DTO.
func ToAutoMatchResponse(applied, forReview []domain.MatchResult) AutoMatchResponse {
	resp := AutoMatchResponse{
		Applied:   make([]MatchResponse, len(applied)),
		ForReview: make([]MatchResponse, len(forReview)),
	}
	for i, mr := range applied {
		resp.Applied[i] = ToMatchResponse(mr)
	}
	for i, mr := range forReview {
		resp.ForReview[i] = ToMatchResponse(mr)
	}
	return resp
}

// DiagnoseRequest identifies one occurrence and the transaction window to
// explain against it.
type DiagnoseRequest struct {
	ObligationID string    `json:"obligationID" binding:"required"`
	DueDate      time.Time `json:"dueDate" binding:"required"`
	From         time.Time `json:"from" binding:"required"`
	To           time.Time `json:"to" binding:"required"`
}

// DiagnoseResponse wraps the raw candidate breakdowns for one occurrence.
type DiagnoseResponse struct {
	OccurrenceID string                      `json:"occurrenceID"`
	Candidates   []recon.DiagnosticCandidate `json:"candidates"`
}

// ConfirmMatchRequest manually links a reviewed transaction to the occurrence
// of an obligation due on a specific date.
type ConfirmMatchRequest struct {
	ObligationID  string    `json:"obligationID" binding:"required"`
	DueDate       time.Time `json:"dueDate" binding:"required"`
	TransactionID string    `json:"transactionID" binding:"required"`
}

// LinkResponse defines the data returned for a persisted link.
type LinkResponse struct {
	TransactionID string    `json:"transactionID"`
	OccurrenceID  string    `json:"occurrenceID"`
	ObligationID  string    `json:"obligationID"`
	DueDate       string    `json:"dueDate"` // YYYY-MM-DD
	Score         int       `json:"score"`
	AutoApplied   bool      `json:"autoApplied"`
	MatchedAt     time.Time `json:"matchedAt"`
}

// ToLinkResponse converts a domain.ObligationLink to LinkResponse DTO
func ToLinkResponse(link *domain.ObligationLink) LinkResponse {
	return LinkResponse{
		TransactionID: link.TransactionID,
		OccurrenceID:  link.OccurrenceID,
		ObligationID:  link.ObligationID,
		DueDate:       link.DueDate.Format("2006-01-02"),
		Score:         link.Score,
		AutoApplied:   link.AutoApplied,
		MatchedAt:     link.MatchedAt,
	}
}
