package dto

import (
	"time"

	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a bank account.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	Institution string `json:"institution"`
	Description string `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Institution *string `json:"institution"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string    `json:"accountID"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		Institution: acc.Institution,
		Description: acc.Description,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
