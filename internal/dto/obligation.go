package dto

import (
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest defines the data needed to create a recurring obligation.
type CreateObligationRequest struct {
	Name            string           `json:"name" binding:"required"`
	ProviderHint    string           `json:"providerHint"`
	ExpectedAmount  decimal.Decimal  `json:"expectedAmount" binding:"required"`
	DueDay          int              `json:"dueDay" binding:"required,min=1,max=31"`
	Frequency       domain.Frequency `json:"frequency" binding:"required,frequency"`
	ActiveFrom      *time.Time       `json:"activeFrom"`  // Optional, defaults to the fixed epoch
	ActiveUntil     *time.Time       `json:"activeUntil"` // Optional, absent = open-ended
	LinkedAccountID string           `json:"linkedAccountID"`
}

// UpdateObligationRequest defines the data allowed for updating an obligation.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateObligationRequest struct {
	Name            *string           `json:"name"`
	ProviderHint    *string           `json:"providerHint"`
	ExpectedAmount  *decimal.Decimal  `json:"expectedAmount"`
	DueDay          *int              `json:"dueDay" binding:"omitempty,min=1,max=31"`
	Frequency       *domain.Frequency `json:"frequency" binding:"omitempty,frequency"`
	ActiveUntil     *time.Time        `json:"activeUntil"`
	LinkedAccountID *string           `json:"linkedAccountID"`
	IsActive        *bool             `json:"isActive"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID    string           `json:"obligationID"`
	Name            string           `json:"name"`
	ProviderHint    string           `json:"providerHint"`
	ExpectedAmount  decimal.Decimal  `json:"expectedAmount"`
	DueDay          int              `json:"dueDay"`
	Frequency       domain.Frequency `json:"frequency"`
	ActiveFrom      time.Time        `json:"activeFrom"`
	ActiveUntil     *time.Time       `json:"activeUntil"`
	IsActive        bool             `json:"isActive"`
	LinkedAccountID string           `json:"linkedAccountID"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// ToObligationResponse converts a domain.Obligation to ObligationResponse DTO
func ToObligationResponse(ob *domain.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationID:    ob.ObligationID,
		Name:            ob.Name,
		ProviderHint:    ob.ProviderHint,
		ExpectedAmount:  ob.ExpectedAmount,
		DueDay:          ob.DueDay,
		Frequency:       ob.Frequency,
		ActiveFrom:      ob.ActiveFrom,
		ActiveUntil:     ob.ActiveUntil,
		IsActive:        ob.IsActive,
		LinkedAccountID: ob.LinkedAccountID,
		CreatedAt:       ob.CreatedAt,
		LastUpdatedAt:   ob.LastUpdatedAt,
	}
}

// ListObligationsParams defines query parameters for listing obligations.
type ListObligationsParams struct {
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
	ActiveOnly bool `form:"activeOnly,default=false"`
}

// ListObligationsResponse wraps the list of obligations.
type ListObligationsResponse struct {
	Obligations []ObligationResponse `json:"obligations"`
}
