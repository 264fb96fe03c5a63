package dto

import (
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ScheduleMonthParams selects one calendar month of the schedule.
type ScheduleMonthParams struct {
	Year  int `form:"year" binding:"required,min=1970,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// ScheduleRangeParams selects an arbitrary date window of the schedule.
type ScheduleRangeParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// OccurrenceResponse defines the data returned for one expected due date.
type OccurrenceResponse struct {
	OccurrenceID   string                  `json:"occurrenceID"`
	ObligationID   string                  `json:"obligationID"`
	ObligationName string                  `json:"obligationName"`
	DueDate        string                  `json:"dueDate"` // YYYY-MM-DD
	ExpectedAmount decimal.Decimal         `json:"expectedAmount"`
	Status         domain.OccurrenceStatus `json:"status"`
}

// ToOccurrenceResponse converts a domain.Occurrence to OccurrenceResponse DTO
func ToOccurrenceResponse(occ domain.Occurrence) OccurrenceResponse {
	resp := OccurrenceResponse{
		OccurrenceID:   occ.OccurrenceID,
		ObligationID:   occ.ObligationID,
		DueDate:        occ.DueDate.Format("2006-01-02"),
		ExpectedAmount: occ.ExpectedAmount,
		Status:         occ.Status,
	}
	if occ.Obligation != nil {
		resp.ObligationName = occ.Obligation.Name
	}
	return resp
}

// ScheduleResponse wraps the occurrences of one schedule query.
type ScheduleResponse struct {
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// ToScheduleResponse converts a slice of occurrences to a ScheduleResponse.
func ToScheduleResponse(occs []domain.Occurrence) ScheduleResponse {
	resp := ScheduleResponse{Occurrences: make([]OccurrenceResponse, len(occs))}
	for i, occ := range occs {
		resp.Occurrences[i] = ToOccurrenceResponse(occ)
	}
	return resp
}
